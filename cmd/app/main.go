package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/postly/internal/categoryservice"
	"github.com/sushihentaime/postly/internal/commentservice"
	"github.com/sushihentaime/postly/internal/common"
	"github.com/sushihentaime/postly/internal/mediaservice"
	"github.com/sushihentaime/postly/internal/notifyservice"
	"github.com/sushihentaime/postly/internal/postservice"
	"github.com/sushihentaime/postly/internal/userservice"
)

type application struct {
	config          *Config
	logger          *slog.Logger
	userService     *userservice.UserService
	postService     *postservice.PostService
	categoryService *categoryservice.CategoryService
	commentService  *commentservice.CommentService
	notifyService   *notifyservice.NotifyService
	media           mediaservice.Storage
	broker          *common.MessageBroker
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Initialize the message broker
	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupContentExchange(broker)
	if err != nil {
		logger.Error("failed to setup the content exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the upload store
	media, err := mediaservice.NewDiskStore(cfg.UploadDir)
	if err != nil {
		logger.Error("failed to create the upload directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	refs := common.FormatRefPolicy{}

	// Initialize the services
	app := &application{
		config:          cfg,
		logger:          logger,
		userService:     userservice.NewUserService(db, cache),
		postService:     postservice.NewPostService(db, cache, refs),
		categoryService: categoryservice.NewCategoryService(db, cache),
		commentService:  commentservice.NewCommentService(db, broker, refs, logger),
		notifyService:   notifyservice.NewNotifyService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailAdmin, cfg.MailPort, logger),
		media:           media,
		broker:          broker,
	}

	// Initialize the consumer
	app.notifyService.SendCommentNotification()
	defer app.notifyService.Close()

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
