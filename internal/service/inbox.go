package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

// InboxService handles the Q&A message thread and the inquiry/appointment
// intake that feeds it.
type InboxService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// Send appends a user question to the thread and posts an automated
// acknowledgement, matching how the assistant flow answers immediately.
func (s *InboxService) Send(ctx context.Context, userID uint64, text string) (*models.Message, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("inbox service not configured")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is required")
	}
	msg := &models.Message{
		UserID: userID,
		Role:   models.MessageRoleUser,
		Text:   text,
	}
	if err := s.Repo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}
	ack := &models.Message{
		UserID: userID,
		Role:   models.MessageRoleAdmin,
		Text:   "Thanks for reaching out. An advisor will reply here shortly.",
		Seen:   true,
	}
	if err := s.Repo.InsertMessage(ctx, ack); err != nil && s.Logger != nil {
		s.Logger.Warn("failed to post auto acknowledgement", zap.Uint64("user_id", userID), zap.Error(err))
	}
	return msg, nil
}

func (s *InboxService) Thread(ctx context.Context, userID uint64) ([]models.Message, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	return s.Repo.ListMessagesByUser(ctx, userID)
}

func (s *InboxService) UnreadCount(ctx context.Context) (int64, error) {
	if s == nil || s.Repo == nil {
		return 0, nil
	}
	return s.Repo.CountUnreadMessages(ctx)
}

func (s *InboxService) MarkAllSeen(ctx context.Context) (int64, error) {
	if s == nil || s.Repo == nil {
		return 0, nil
	}
	return s.Repo.MarkMessagesSeen(ctx)
}

type InquiryInput struct {
	UserID  *uint64
	Name    string
	Email   string
	Phone   string
	Message string
}

// FileInquiry records a contact request and returns its reference code. When
// the caller is logged in, a confirmation lands in their message thread.
func (s *InboxService) FileInquiry(ctx context.Context, in InquiryInput) (*models.Inquiry, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("inbox service not configured")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	inquiry := &models.Inquiry{
		UserID:    in.UserID,
		Name:      name,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Message:   strings.TrimSpace(in.Message),
		Reference: uuid.NewString(),
	}
	if err := s.Repo.InsertInquiry(ctx, inquiry); err != nil {
		return nil, err
	}
	if in.UserID != nil {
		confirm := &models.Message{
			UserID: *in.UserID,
			Role:   models.MessageRoleAdmin,
			Text:   fmt.Sprintf("Your inquiry has been filed. Reference: %s", inquiry.Reference),
			Seen:   true,
		}
		if err := s.Repo.InsertMessage(ctx, confirm); err != nil && s.Logger != nil {
			s.Logger.Warn("failed to post inquiry confirmation", zap.Error(err))
		}
	}
	if s.Logger != nil {
		s.Logger.Info("inquiry filed", zap.String("reference", inquiry.Reference))
	}
	return inquiry, nil
}

func (s *InboxService) ListInquiries(ctx context.Context, limit, offset int) ([]models.Inquiry, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	return s.Repo.ListInquiries(ctx, repository.ListInquiriesParams{Limit: limit, Offset: offset})
}
