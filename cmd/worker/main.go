package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paperlens/backend/internal/db"
	"github.com/paperlens/backend/internal/queue"
	"github.com/paperlens/backend/internal/util"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/paperlens/backend/pkg/ai"
	oai "github.com/paperlens/backend/pkg/ai/ollama"
	gai "github.com/paperlens/backend/pkg/ai/openai"
	"github.com/paperlens/backend/pkg/logger"
	"github.com/paperlens/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	// Embedding client
	adapter := util.GetEnv("AI_ADAPTER")
	var aiClient ai.EmbeddingClient

	switch adapter {
	case "ollama":
		client, err := oai.NewEmbeddingClient(oai.NewEmbeddingClientParams{
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),

			BaseURL: util.GetEnv("AI_EMBED_URL"),
			ApiKey:  util.GetEnv("AI_EMBED_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
			TimeoutMin:            int(util.GetEnvNumeric("AI_TIMEOUT_MIN", 2)),
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		aiClient = client
	default:
		aiClient = gai.NewEmbeddingClient(gai.NewEmbeddingClientParams{
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),

			BaseURL: util.GetEnv("AI_EMBED_URL"),
			ApiKey:  util.GetEnv("AI_EMBED_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
			TimeoutMin:            int(util.GetEnvNumeric("AI_TIMEOUT_MIN", 2)),
		})
	}

	// Init pgx client
	pgConn, err := db.NewPool(ctx, util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer pgConn.Close()

	// Init rabbitmq
	conn := queue.Init()
	defer conn.Close()

	// Init rabbitmq queues if not exist
	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	queues := []string{queue.IngestQueue}
	if err := queue.SetupQueues(ch, queues); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	logger.Info("Listening for messages")

	// Single consumer channel with prefetch=1 so only one message is
	// processed at a time.
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	if err := consumerCh.Qos(1, 0, true); err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	msgs, err := consumerCh.Consume(
		queue.IngestQueue,
		fmt.Sprintf("%s_consumer", queue.IngestQueue),
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", queue.IngestQueue, "err", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopping message processor")
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Info("Message channel closed", "queue", queue.IngestQueue)
					return
				}

				startTime := time.Now()
				logger.Info("Received message", "queue", queue.IngestQueue)

				err := queue.ProcessIngestMessage(ctx, aiClient, pgConn, string(msg.Body))
				if err != nil {
					logger.Error("Failed to process message", "queue", queue.IngestQueue, "err", err)
					handleProcessingError(ch, msg, queue.IngestQueue)
				} else {
					msg.Ack(false)
				}

				metrics := aiClient.GetMetrics()
				logger.Info(
					"Embedding metrics",
					"input_tokens", metrics.InputTokens,
					"total_tokens", metrics.TotalTokens,
					"tokens_per_second", metrics.TokenPerSecond,
				)

				processingDuration := time.Since(startTime)
				hours := int(processingDuration.Hours())
				minutes := int(processingDuration.Minutes()) % 60
				seconds := int(processingDuration.Seconds()) % 60
				logger.Info(
					"Processing time",
					"duration", fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds),
				)
				logger.Info("Waiting for next message")
				aiClient.ResetMetrics()
			}
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, exiting...")
}

func handleProcessingError(ch *amqp.Channel, msg amqp.Delivery, queueName string) {
	retries := 0
	if val, ok := msg.Headers["x-retries"]; ok {
		if v, ok := val.(int32); ok {
			retries = int(v)
		}
	}

	// If message has been retried 10 times, send to dead-letter
	if retries >= 10 {
		dlqName := queueName + "_dlq"
		logger.Info("Sending message to DLQ", "dlq", dlqName)
		pubErr := ch.Publish(
			"",
			dlqName,
			false,
			false,
			amqp.Publishing{
				ContentType: "text/plain",
				Body:        msg.Body,
				Headers:     msg.Headers,
			},
		)
		if pubErr != nil {
			logger.Error("Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
			msg.Nack(false, true)
			return
		}
		msg.Ack(false)
		return
	}

	retryName := queueName + "_retry"
	headers := msg.Headers
	if headers == nil {
		headers = amqp.Table{}
	}
	headers["x-retries"] = retries + 1

	pubErr := ch.Publish(
		"",
		retryName,
		false,
		false,
		amqp.Publishing{
			ContentType: "text/plain",
			Body:        msg.Body,
			Headers:     headers,
		},
	)
	if pubErr != nil {
		logger.Error("Failed to publish to retry queue", "retry_queue", retryName, "err", pubErr)
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}
