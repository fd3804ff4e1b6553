package service

import (
	"context"
	"encoding/json"
	"log"

	"ref-intake-be/internal/constant"
	"ref-intake-be/internal/dto"
	"ref-intake-be/internal/pkg/mailer"
	"ref-intake-be/internal/repository/specification"
	"ref-intake-be/internal/repository/unitofwork"
	internalWS "ref-intake-be/internal/websocket"
	"ref-intake-be/pkg/events"
	"ref-intake-be/pkg/intake/summary"
	pktNats "ref-intake-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService runs the post-submission side effects off the turn path:
// the owner notification mail, the dashboard broadcast and the optional NATS
// forward. A mail failure never fails the submission itself.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	uowFactory    unitofwork.RepositoryFactory
	emailService  mailer.IEmailService
	hub           *internalWS.Hub
	natsPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	hub *internalWS.Hub,
	natsPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		uowFactory:    uowFactory,
		emailService:  emailService,
		hub:           hub,
		natsPublisher: natsPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SubmissionCreatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing submission %s", payload.SubmissionId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	submission, err := uow.SubmissionRepository().FindOne(ctx, specification.ByID{ID: payload.SubmissionId})
	if err != nil {
		log.Printf("[ERROR] Failed to load submission %s: %v", payload.SubmissionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if submission == nil {
		log.Printf("[ERROR] Submission not found: %s", payload.SubmissionId)
		msg.Ack()
		return
	}

	form, err := uow.FormRepository().FindOne(ctx, specification.ByID{ID: submission.FormId})
	if err != nil {
		log.Printf("[ERROR] Failed to load form %s: %v", submission.FormId, err)
		msg.Nack()
		return
	}
	if form == nil {
		// Form deleted after submission; nothing left to notify about.
		log.Printf("[WARN] Form not found for submission %s", payload.SubmissionId)
		msg.Ack()
		return
	}

	if cs.hub != nil {
		cs.hub.Broadcast(constant.EventSubmissionCreated, payload)
	}

	if cs.emailService != nil && form.OwnerEmail != "" {
		summaryText := summary.Build(form, submission.State.Committed)
		if err := cs.emailService.SendSubmissionNotice(form.OwnerEmail, form.Title, summaryText); err != nil {
			log.Printf("[ERROR] Failed to mail owner for submission %s: %v", payload.SubmissionId, err)
			// Side effect only; the submission is already durable.
		}
	}

	if cs.natsPublisher != nil {
		event := events.NewSubmissionCreated(payload.SubmissionId, payload.SessionId, payload.FormId)
		if err := cs.natsPublisher.Publish(ctx, event); err != nil {
			log.Printf("[ERROR] Failed to forward submission %s to NATS: %v", payload.SubmissionId, err)
		}
	}

	log.Printf("[SUCCESS] Submission processed: %s", payload.SubmissionId)
	msg.Ack()
}
