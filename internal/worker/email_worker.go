package worker

// email_worker.go
// Delivers receipt emails queued by the receipt worker. A failed send is
// parked in the DLQ so a flaky SMTP relay never silently drops a receipt.

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/infra"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer *infra.Mailer
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, rdb: rdb}
}

// Process sends one receipt email with its PDF attached.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	if err := w.mailer.SendReceipt(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: send failed")
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw, err.Error(), 1)
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: receipt sent")
}
