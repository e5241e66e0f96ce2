package main

import (
	"net/http"
	"os"

	"adminhub/internal/app/server/api"
	"adminhub/internal/app/server/audit"
	"adminhub/internal/app/server/config"
	"adminhub/internal/app/server/store"
	"adminhub/internal/infrastructure/migration"
	"adminhub/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env)

	mg := migration.NewMigration(
		conf.Audit.Migrations,
		migration.SQLiteURL(conf.Audit.DatabasePath),
		migration.DefaultEngine,
	)
	if err := mg.Up(); err != nil {
		log.Error("Не удалось накатить миграции", "error", err)
		os.Exit(1)
	}

	auditLog, err := audit.Open(conf.Audit.DatabasePath)
	if err != nil {
		log.Error("Не удалось открыть журнал", "error", err)
		os.Exit(1)
	}
	defer auditLog.Close()

	mem := store.NewMemory()
	if err := store.Seed(mem, conf.Seed.AdminEmail, conf.Seed.AdminPassword); err != nil {
		log.Error("Не удалось засеять демо-данные", "error", err)
		os.Exit(1)
	}

	mux := api.New(mem, auditLog, log)

	log.Info("Заглушка запущена",
		"address", conf.Server.RunAddress,
		"admin", conf.Seed.AdminEmail,
	)
	if err := http.ListenAndServe(conf.Server.RunAddress, mux); err != nil {
		log.Error("Сервер остановлен", "error", err)
		os.Exit(1)
	}
}
