package main

import (
	"flag"
	"os"

	"github.com/DarrenRF/rt/server"
	"github.com/DarrenRF/rt/server/filestore"
	"github.com/DarrenRF/rt/service"
	"github.com/DarrenRF/rt/utils"
	"github.com/DarrenRF/rt/utils/dotenv"
	. "github.com/DarrenRF/rt/utils/log"
)

func newUploadStore() filestore.UploadStore {
	if os.Getenv("UPLOAD_STORE") == "s3" {
		store, err := filestore.NewS3FileStore(
			os.Getenv("S3_BUCKET"), os.Getenv("S3_REGION"), os.Getenv("UPLOAD_URL_PREFIX"))
		if err != nil {
			Log.Fatal("cannot create S3 upload store: ", err)
		}
		return store
	}
	return filestore.NewLocalFileStore(
		os.Getenv("UPLOAD_FOLDER"), os.Getenv("UPLOAD_URL_PREFIX"))
}

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	flag.Parse()
	InitLogger()

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("cannot connect to database: ", err)
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		Log.Fatal("cannot migrate database: ", err)
	}

	svc := service.New(db)
	srv := server.New(svc, newUploadStore())

	secretKey := os.Getenv("SECRET_KEY")
	if secretKey == "" {
		secretKey = "dev_secret_change_me"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	Log.Info("serving on port ", port)
	if err := srv.NewRouter(secretKey).Run(":" + port); err != nil {
		Log.Fatal(err)
	}
}
