package model

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	"github.com/aahabhisheksingh/studyhub-api/library/db/mongo"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

var (
	AccountsDB mongo.DB
)

func Initialize(ctx context.Context) {
	var err error
	if AccountsDB, err = mongo.NewDB(ctx,
		mongo.DialInfo{
			Addr:   gconfig.Shared.GetString("settings.db.accounts.addr"),
			DBName: gconfig.Shared.GetString("settings.db.accounts.db"),
			User:   gconfig.Shared.GetString("settings.db.accounts.user"),
			Pwd:    gconfig.Shared.GetString("settings.db.accounts.pwd"),
		},
	); err != nil {
		log.Logger.Panic("connect to accounts db", zap.Error(err))
	}
}
