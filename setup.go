package main

import (
	"bitwise74/files-api/aws"
	"bitwise74/files-api/db"
	"bitwise74/files-api/internal"
	"bitwise74/files-api/internal/blob"
	"bitwise74/files-api/internal/queue"
	"bitwise74/files-api/internal/service"
	"bitwise74/files-api/internal/session"
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stack struct {
	deps    *internal.Deps
	closers []func()
}

func (r *stack) close() {
	// Reverse order, the queue stops before the stores it uses
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// setup opens the stores and starts the workers needed by mode
func setup(ctx context.Context, mode string) (*stack, error) {
	r := &stack{}

	conn, err := db.New(viper.GetString("db.driver"), viper.GetString("db.dsn"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	r.closers = append(r.closers, func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	blobs, err := newBlobStore(ctx)
	if err != nil {
		r.close()
		return nil, err
	}

	sessions := newSessionStore()
	r.closers = append(r.closers, func() { sessions.Close() })

	q, err := newQueue(r, conn, blobs, mode)
	if err != nil {
		r.close()
		return nil, err
	}

	r.deps = internal.Build(conn, sessions, blobs, q, viper.GetDuration("session.ttl"))
	return r, nil
}

func newBlobStore(ctx context.Context) (blob.Store, error) {
	if viper.GetString("storage.type") == "s3" {
		c, err := aws.NewS3(ctx, aws.S3Options{
			AccessKeyID:     viper.GetString("storage.s3.access_key_id"),
			SecretAccessKey: viper.GetString("storage.s3.secret_access_key"),
			Region:          viper.GetString("storage.s3.region"),
			Bucket:          viper.GetString("storage.s3.bucket"),
			Endpoint:        viper.GetString("storage.s3.endpoint"),
			UsePathStyle:    viper.GetBool("storage.s3.use_path_style"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		return blob.NewS3Store(c, viper.GetString("storage.s3.prefix")), nil
	}

	l, err := blob.NewLocalStore(viper.GetString("storage.folder_path"))
	if err != nil {
		return nil, err
	}

	zap.L().Debug("Using local blob storage", zap.String("root", l.Root()))
	return l, nil
}

func newSessionStore() session.Store {
	if viper.GetString("session.driver") == "memory" {
		zap.L().Warn("Sessions are kept in memory and will be lost on restart")
		return session.NewMemoryStore()
	}

	return session.NewRedisStore(redis.NewClient(&redis.Options{
		Addr:     viper.GetString("redis.addr"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	}))
}

func newQueue(r *stack, conn *gorm.DB, blobs blob.Store, mode string) (queue.Enqueuer, error) {
	handlers := internal.NewHandlers(conn, blobs, service.MailConfig{
		Host:     viper.GetString("mail.host"),
		Port:     viper.GetInt("mail.port"),
		Username: viper.GetString("mail.username"),
		Password: viper.GetString("mail.password"),
		From:     viper.GetString("mail.sender_address"),
	})

	if viper.GetString("queue.driver") == "memory" {
		q := queue.NewJobQueue(
			viper.GetInt("queue.workers"),
			viper.GetInt("queue.size"),
			viper.GetInt("queue.max_retry"),
			handlers,
		)
		q.StartWorkerPool()
		r.closers = append(r.closers, q.Stop)

		return q, nil
	}

	opt := asynq.RedisClientOpt{
		Addr:     viper.GetString("redis.addr"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	}

	q := queue.NewAsynqQueue(opt, viper.GetInt("queue.max_retry"))
	r.closers = append(r.closers, func() { q.Close() })

	if mode == "api" {
		return q, nil
	}

	w := queue.NewWorker(opt, viper.GetInt("queue.workers"), handlers)
	if err := w.Start(); err != nil {
		return nil, fmt.Errorf("failed to start worker, %w", err)
	}
	r.closers = append(r.closers, w.Shutdown)

	return q, nil
}
