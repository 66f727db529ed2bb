package main

import (
	"flag"
	"strconv"
	"time"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/repositories"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/tasks"
	"github.com/OryemaStephen/alx-project-nexus-api/pkg/config"
	"github.com/OryemaStephen/alx-project-nexus-api/pkg/logging"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

func main() {
	selfCheck := flag.Bool("selfcheck", false, "enqueue a trivial task, await its result, then exit")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Env)

	if *selfCheck {
		runSelfCheck(cfg.RedisAddr, logger)
		return
	}

	db, err := config.InitDB(cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	mailer := tasks.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	processor := tasks.NewProcessor(
		mailer,
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresShareRepository(db),
		repositories.NewPostgresFollowRepository(db),
		logger,
	)

	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr}

	mux := asynq.NewServeMux()
	processor.Register(mux)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
	})

	// Periodic maintenance jobs run on fixed calendar schedules,
	// independent of the request path.
	scheduler := asynq.NewScheduler(redisOpt, nil)
	registerSchedules(scheduler, logger)

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Fatalf("Scheduler failed: %v", err)
		}
	}()

	logger.Info("Worker started")
	if err := srv.Run(mux); err != nil {
		logger.Fatalf("Worker failed: %v", err)
	}
}

// runSelfCheck verifies a running worker end to end: enqueue debug:add,
// poll for its result with a fixed timeout, compare the sum. This is
// the only place a task result is ever awaited.
func runSelfCheck(redisAddr string, logger *logrus.Logger) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer client.Close()
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: redisAddr})
	defer inspector.Close()

	task, err := tasks.NewAddTask(3, 4)
	if err != nil {
		logger.Fatalf("Failed to build task: %v", err)
	}
	info, err := client.Enqueue(task, asynq.Retention(time.Minute))
	if err != nil {
		logger.Fatalf("Failed to enqueue task: %v", err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		current, err := inspector.GetTaskInfo(info.Queue, info.ID)
		if err != nil {
			logger.Fatalf("Failed to inspect task: %v", err)
		}
		if current.State == asynq.TaskStateCompleted {
			sum, err := strconv.Atoi(string(current.Result))
			if err != nil || sum != 7 {
				logger.Fatalf("Task returned unexpected result %q", current.Result)
			}
			logger.Info("Worker self-check succeeded")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	logger.Fatal("Worker self-check timed out")
}

func registerSchedules(scheduler *asynq.Scheduler, logger *logrus.Logger) {
	cleanupComments, err := tasks.NewCleanupCommentsTask(tasks.DefaultCommentMaxAgeDays)
	if err != nil {
		logger.Fatalf("Failed to build cleanup task: %v", err)
	}
	cleanupPosts, err := tasks.NewCleanupPostsTask(tasks.DefaultPostMaxAgeDays)
	if err != nil {
		logger.Fatalf("Failed to build cleanup task: %v", err)
	}

	// Nightly comment sweep, weekly post sweep, hourly metrics log.
	schedules := []struct {
		spec string
		task *asynq.Task
	}{
		{"0 3 * * *", cleanupComments},
		{"30 3 * * 0", cleanupPosts},
		{"0 * * * *", tasks.NewLogMetricsTask()},
	}
	for _, s := range schedules {
		if _, err := scheduler.Register(s.spec, s.task); err != nil {
			logger.Fatalf("Failed to register schedule %q: %v", s.spec, err)
		}
	}
}
