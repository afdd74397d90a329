package main

import (
	"context"
	"errors"
	log "log/slog"
	"os"
	"os/signal"
	"syscall"

	"Jandi/internal/api/config"
	"Jandi/internal/job"
	"Jandi/internal/pkg/cron"
	"Jandi/internal/pkg/database"
	"Jandi/internal/pkg/kafka"
	"Jandi/internal/pkg/logger"
	"Jandi/internal/pkg/mail"
	"Jandi/internal/repository"

	"golang.org/x/sync/errgroup"
)

// 邮件调度进程：每日扫描不活跃用户投递提醒，同时消费邮件队列执行 SMTP 发送
func main() {
	// 加载配置
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	// 初始化日志
	logger.InitLogger()

	// 数据库连接
	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}

	// Kafka 生产者
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		log.Error("Fatal error: failed to create kafka producer", "err", err)
		panic(err)
	}
	defer func() { _ = producer.Close() }()

	// Kafka 邮件消费者
	sender := mail.NewSMTPSender(cfg.SMTP)
	kafkaMgr, err := kafka.NewConsumerManager(cfg, kafka.NewMailHandler(sender))
	if err != nil {
		log.Error("Fatal error: failed to create kafka consumer", "err", err)
		panic(err)
	}

	userRepo := repository.NewUserRepo(db)
	inactivityJob := job.NewInactivityJob(userRepo, producer, cfg.Kafka.MailTopic)
	cronMgr := cron.NewCronManager(inactivityJob)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	err = cron.InitCron(cronMgr)
	if err != nil {
		log.Error("Fatal error: failed to start cron jobs", "err", err)
		panic(err)
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Cron Jobs stopping...")
		cronMgr.Stop()
		return nil
	})

	// Kafka 消费者
	g.Go(func() error {
		log.Info("Kafka Consumers starting...")
		return kafkaMgr.Start(ctx, cfg)
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Mail worker exited with error", "err", err)
	}
	log.Info("Mail worker exited successfully.")
}
