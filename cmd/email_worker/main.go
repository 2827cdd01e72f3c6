package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/ramchaik/gojo/config"
	"github.com/ramchaik/gojo/pkg/helpers"
	"github.com/ramchaik/gojo/pkg/mailer"
	"github.com/ramchaik/gojo/pkg/mailer/templates"
)

// email_worker consumes board invitation jobs from RabbitMQ and sends them
// through Mailgun. Run it as a separate process next to the API server.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		log.Fatal("MAILGUN_DOMAIN and MAILGUN_API_KEY are required")
	}
	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunTimeout)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	q, err := ch.QueueDeclare(cfg.RabbitMQInviteQueue, true, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}
	if err := ch.Qos(5, 0, false); err != nil {
		log.Fatalf("failed to set qos: %v", err)
	}

	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("email worker started, consuming %q", q.Name)
	for {
		select {
		case <-ctx.Done():
			logger.Info("email worker shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			handle(ctx, logger, mg, cfg, d)
		}
	}
}

func handle(ctx context.Context, logger *logrus.Logger, mg *mailer.Mailgun, cfg *config.Config, d amqp.Delivery) {
	var job mailer.InviteJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.Errorf("invalid invite payload, dropping: %v", err)
		_ = d.Nack(false, false)
		return
	}

	boardURL := fmt.Sprintf("%s/boards/%s", cfg.WebBaseURL, job.BoardID)
	html, err := templates.RenderInvite(templates.InviteData{
		Name:      job.Name,
		BoardName: job.BoardName,
		BoardURL:  boardURL,
	})
	if err != nil {
		logger.Errorf("failed to render invite for %s: %v", job.To, err)
		_ = d.Nack(false, false)
		return
	}

	subject := templates.InviteSubject(job.BoardName)
	text := fmt.Sprintf("You were added to the board %s. Open it at %s", job.BoardName, boardURL)
	if err := mg.Send(ctx, job.To, subject, text, html); err != nil {
		logger.Errorf("failed to send invite to %s: %v", job.To, err)
		// requeue once; Mailgun may be transiently unavailable
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}
