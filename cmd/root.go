package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gutils "github.com/Laisky/go-utils/v6"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	blog "github.com/aahabhisheksingh/studyhub-api/internal/web/blog/controller"
	courses "github.com/aahabhisheksingh/studyhub-api/internal/web/courses/controller"
	user "github.com/aahabhisheksingh/studyhub-api/internal/web/user/controller"
	"github.com/aahabhisheksingh/studyhub-api/library/auth"
	"github.com/aahabhisheksingh/studyhub-api/library/config"
	"github.com/aahabhisheksingh/studyhub-api/library/jwt"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
	"github.com/aahabhisheksingh/studyhub-api/library/storage"
)

var rootCMD = &cobra.Command{
	Use:   "studyhub-api",
	Short: "studyhub-api",
	Long:  `API service for the StudyHub study-materials portal`,
	Args:  gcmd.NoExtraArgs,
}

func initialize(ctx context.Context, cmd *cobra.Command) error {
	if err := gconfig.Shared.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind pflags")
	}

	setupSettings(ctx)
	setupLogger(ctx)
	if err := validateStartupConfig(); err != nil {
		return errors.Wrap(err, "validate startup config")
	}
	setupLibrary(ctx)
	setupModules(ctx)

	return nil
}

func setupModules(ctx context.Context) {
	store, err := storage.New(ctx, storage.Config{
		Endpoint:  gconfig.Shared.GetString("settings.storage.endpoint"),
		AccessKey: gconfig.Shared.GetString("settings.storage.access_key"),
		SecretKey: gconfig.Shared.GetString("settings.storage.secret_key"),
		Bucket:    gconfig.Shared.GetString("settings.storage.bucket"),
		PublicURL: gconfig.Shared.GetString("settings.storage.public_url"),
		UseSSL:    gconfig.Shared.GetBool("settings.storage.use_ssl"),
	})
	if err != nil {
		log.Logger.Panic("connect object storage", zap.Error(err))
	}

	user.Initialize(ctx)
	courses.Initialize(ctx, store)
	blog.Initialize(ctx, store)
}

func setupLibrary(ctx context.Context) {
	if err := auth.Initialize([]byte(gconfig.Shared.GetString("settings.secret"))); err != nil {
		log.Logger.Panic("init auth", zap.Error(err))
	}

	if err := jwt.Initialize([]byte(gconfig.Shared.GetString("settings.secret"))); err != nil {
		log.Logger.Panic("setup jwt", zap.Error(err))
	}
}

func setupSettings(ctx context.Context) {
	// mode
	if gconfig.Shared.GetBool("debug") {
		fmt.Println("run in debug mode")
		gconfig.Shared.Set("log-level", "debug")
	} else { // prod mode
		fmt.Println("run in prod mode")
	}

	// clock
	gutils.SetInternalClock(100 * time.Millisecond)

	// load configuration
	cfgPath := gconfig.Shared.GetString("config")
	config.LoadFromFile(cfgPath)
}

func setupLogger(ctx context.Context) {
	lvl := gconfig.Shared.GetString("log-level")
	if err := log.Logger.ChangeLevel(glog.Level(lvl)); err != nil {
		log.Logger.Panic("change log level", zap.Error(err), zap.String("level", lvl))
	}
}

func init() {
	rootCMD.PersistentFlags().Bool("debug", false, "run in debug mode")
	rootCMD.PersistentFlags().String("listen", "localhost:8080", "like `localhost:8080`")
	rootCMD.PersistentFlags().StringP("config", "c", "/etc/studyhub-api/settings.yml", "config file path")
	rootCMD.PersistentFlags().String("log-level", "info", "`debug/info/error`")
}

// Execute execute root command
func Execute() {
	if err := rootCMD.Execute(); err != nil {
		glog.Shared.Panic("start", zap.Error(err))
	}
}
