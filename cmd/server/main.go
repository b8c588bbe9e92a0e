package main

import (
	"net/http"

	"github.com/Chaukil/scanchi/config"
	"github.com/Chaukil/scanchi/controllers"
	"github.com/Chaukil/scanchi/jobs"
	"github.com/Chaukil/scanchi/logger"
	"github.com/Chaukil/scanchi/ocr"
	"github.com/Chaukil/scanchi/routes"
	"github.com/Chaukil/scanchi/services"
	"github.com/joho/godotenv"
)

func main() {
	logger.Init()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system env vars")
	}

	cfg, err := config.Load(config.GetEnv("CONFIG_FILE", "config.yaml"))
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return
	}

	tesseract := ocr.NewTesseractRecognizer(cfg.OCRLanguages)
	recognizers := map[string]ocr.Recognizer{
		"image": tesseract,
		"pdf":   ocr.NewPDFRecognizer(),
	}

	worker := jobs.NewScanWorker(tesseract)
	store := services.NewSessionStore()

	deps := routes.Deps{
		Scans:    controllers.NewScanController(recognizers, worker, cfg.MaxUploadMB),
		Sessions: controllers.NewSessionController(store),
		Exports:  controllers.NewExportController(store, services.NewExportService()),
		Worker:   worker,
	}

	r := routes.SetupRouter(cfg, deps)

	logger.Info("Server starting", "port", cfg.Port, "ocr_languages", cfg.OCRLanguages)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Error("Server failed to start", "error", err)
	}
}
