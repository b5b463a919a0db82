package model

import (
	"context"
	"path/filepath"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"google.golang.org/api/option"

	"github.com/aahabhisheksingh/studyhub-api/library/db/firestore"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

var (
	ContentDB *firestore.DB
)

func Initialize(ctx context.Context) {
	defer log.Logger.Info("connected blog firestore")
	var err error
	if ContentDB, err = firestore.NewDB(ctx,
		gconfig.Shared.GetString("settings.content.project_id"),
		option.WithCredentialsFile(filepath.Join(
			gconfig.Shared.GetString("cfg_dir"),
			gconfig.Shared.GetString("settings.content.credential_file"),
		)),
	); err != nil {
		log.Logger.Panic("create firestore client", zap.Error(err))
	}
}
