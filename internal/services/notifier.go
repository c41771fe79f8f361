package services

import (
	"context"
	"fmt"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"go.uber.org/zap"
)

// PostReader loads the post an event refers to.
type PostReader interface {
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
}

// CommenterLister lists the distinct users who commented on a post.
type CommenterLister interface {
	ListCommenterIDs(ctx context.Context, postID uint) ([]string, error)
}

// UserIDLister lists every registered user.
type UserIDLister interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}

// NotificationWriter persists a single notification row.
type NotificationWriter interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
}

// Event is something a user did that other users should hear about.
type Event struct {
	Type      models.NotificationType
	PostID    uint
	ActorID   string
	CommentID *uint
	// Exclude lists users already notified about the same action.
	Exclude []string
}

// DeliveryFailure records a recipient whose row could not be written.
type DeliveryFailure struct {
	RecipientID string
	Err         error
}

// FanOutResult reports how many rows were written and which recipients failed.
// Created may be smaller than the recipient set.
type FanOutResult struct {
	Created  int
	Failures []DeliveryFailure
}

func (r FanOutResult) merge(o FanOutResult) FanOutResult {
	return FanOutResult{
		Created:  r.Created + o.Created,
		Failures: append(r.Failures, o.Failures...),
	}
}

// Notifier turns content events into per-recipient notification rows.
//
// Delivery is best-effort: each recipient is inserted on its own, with no wrapping
// transaction, and a failed insert never stops the rest. Dispatching the same event
// twice writes duplicate rows, so callers trigger it exactly once per event.
type Notifier struct {
	posts         PostReader
	commenters    CommenterLister
	users         UserIDLister
	notifications NotificationWriter
	logger        *zap.Logger
}

// NewNotifier creates a new Notifier
func NewNotifier(posts PostReader, commenters CommenterLister, users UserIDLister, notifications NotificationWriter, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		posts:         posts,
		commenters:    commenters,
		users:         users,
		notifications: notifications,
		logger:        logger.Named("notifier"),
	}
}

// NotifyLike tells the post's author that actorID liked it.
func (n *Notifier) NotifyLike(ctx context.Context, postID uint, actorID string) (FanOutResult, error) {
	return n.Dispatch(ctx, Event{Type: models.NotificationLike, PostID: postID, ActorID: actorID})
}

// NotifyComment tells the post's author about a new comment, then tells everyone
// else who commented on the post that the thread has a reply. An author who got the
// comment row does not also get a reply row.
func (n *Notifier) NotifyComment(ctx context.Context, postID uint, actorID string, commentID uint) (FanOutResult, error) {
	res, notified, err := n.dispatch(ctx, Event{Type: models.NotificationComment, PostID: postID, ActorID: actorID, CommentID: &commentID})
	if err != nil {
		return res, err
	}
	reply, _, err := n.dispatch(ctx, Event{
		Type:      models.NotificationCommentReply,
		PostID:    postID,
		ActorID:   actorID,
		CommentID: &commentID,
		Exclude:   notified,
	})
	return res.merge(reply), err
}

// NotifyNewArticle tells every user except the publishing admin about a new post.
func (n *Notifier) NotifyNewArticle(ctx context.Context, postID uint, adminID string) (FanOutResult, error) {
	return n.Dispatch(ctx, Event{Type: models.NotificationNewArticle, PostID: postID, ActorID: adminID})
}

// Dispatch runs one event through the pipeline: resolve the post, compute candidate
// recipients, drop the actor and duplicates, then write one row per recipient.
//
// A missing post yields an empty result and no error. Failing to list recipients is a
// DataAccess error. Per-recipient insert failures are only collected.
func (n *Notifier) Dispatch(ctx context.Context, ev Event) (FanOutResult, error) {
	res, _, err := n.dispatch(ctx, ev)
	return res, err
}

// dispatch is Dispatch that also returns the recipients whose rows were written.
func (n *Notifier) dispatch(ctx context.Context, ev Event) (FanOutResult, []string, error) {
	// The writes outlive a client that hangs up; every store call still has its own timeout.
	ctx = context.WithoutCancel(ctx)

	post, err := n.posts.GetPostByID(ctx, ev.PostID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			n.logger.Debug("post gone, nothing to notify",
				zap.String("type", string(ev.Type)),
				zap.Uint("post_id", ev.PostID))
			return FanOutResult{}, nil, nil
		}
		return FanOutResult{}, nil, err
	}

	candidates, err := n.candidates(ctx, ev, post)
	if err != nil {
		return FanOutResult{}, nil, err
	}

	recipients := without(Recipients(candidates, ev.ActorID), ev.Exclude)
	if dropped := len(candidates) - len(recipients); dropped > 0 {
		notificationsSuppressed.WithLabelValues(string(ev.Type)).Add(float64(dropped))
	}
	res, delivered := n.deliver(ctx, ev, recipients)
	return res, delivered, nil
}

func (n *Notifier) candidates(ctx context.Context, ev Event, post *models.Post) ([]string, error) {
	switch ev.Type {
	case models.NotificationLike, models.NotificationComment:
		if post.AuthorID == nil {
			return nil, nil
		}
		return []string{*post.AuthorID}, nil
	case models.NotificationCommentReply:
		return n.commenters.ListCommenterIDs(ctx, post.ID)
	case models.NotificationNewArticle:
		return n.users.ListUserIDs(ctx)
	default:
		return nil, apperror.Validation("type", fmt.Sprintf("unknown notification type %q", ev.Type))
	}
}

func (n *Notifier) deliver(ctx context.Context, ev Event, recipients []string) (FanOutResult, []string) {
	var res FanOutResult
	delivered := make([]string, 0, len(recipients))
	for _, recipientID := range recipients {
		row := &models.Notification{
			UserID:    recipientID,
			PostID:    ev.PostID,
			Type:      ev.Type,
			CommentID: ev.CommentID,
		}
		if ev.ActorID != "" {
			actor := ev.ActorID
			row.ActorUserID = &actor
		}

		if err := n.notifications.CreateNotification(ctx, row); err != nil {
			res.Failures = append(res.Failures, DeliveryFailure{RecipientID: recipientID, Err: err})
			notificationFailures.WithLabelValues(string(ev.Type)).Inc()
			n.logger.Warn("notification not delivered",
				zap.String("type", string(ev.Type)),
				zap.Uint("post_id", ev.PostID),
				zap.String("recipient_id", recipientID),
				zap.Error(err))
			continue
		}
		res.Created++
		delivered = append(delivered, recipientID)
	}

	if res.Created > 0 {
		notificationsCreated.WithLabelValues(string(ev.Type)).Add(float64(res.Created))
	}
	return res, delivered
}

func without(ids, exclude []string) []string {
	if len(exclude) == 0 {
		return ids
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	out := ids[:0]
	for _, id := range ids {
		if _, ok := skip[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Recipients removes empty ids, the actor and duplicates from candidates, keeping
// first-seen order.
func Recipients(candidates []string, actorID string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if id == "" || id == actorID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
