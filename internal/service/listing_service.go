package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campus-market/marketplace-service/internal/config"
	"github.com/campus-market/marketplace-service/internal/domain"
	"github.com/campus-market/marketplace-service/internal/events"
	"github.com/campus-market/marketplace-service/internal/repository"
	apperrors "github.com/campus-market/marketplace-service/pkg/util/errorutil"
)

const anonymousAuthorName = "Anonymous"

// ListingService coordinates marketplace post and roommate listing flows.
type ListingService struct {
	posts      repository.PostRepository
	roommates  repository.RoommateRepository
	dispatcher events.Dispatcher
	searchMax  int
}

// ListingDependencies bundles repositories for the listing service.
type ListingDependencies struct {
	PostRepo     repository.PostRepository
	RoommateRepo repository.RoommateRepository
	Dispatcher   events.Dispatcher
}

// NewListingService builds the service.
func NewListingService(cfg config.Config, deps ListingDependencies) *ListingService {
	searchMax := cfg.Search.MaxResults
	if searchMax <= 0 {
		searchMax = 20
	}
	return &ListingService{
		posts:      deps.PostRepo,
		roommates:  deps.RoommateRepo,
		dispatcher: deps.Dispatcher,
		searchMax:  searchMax,
	}
}

// PostCreateInput describes a post creation payload.
type PostCreateInput struct {
	Title        string
	Description  string
	Images       []string
	ExchangeType string
	Condition    string
	Location     string
	Categories   []string
}

// CreatePost persists a new post with defaulted status and counters.
func (s *ListingService) CreatePost(ctx context.Context, authorID string, input PostCreateInput) (*domain.Post, error) {
	post := &domain.Post{
		Title:        input.Title,
		Description:  input.Description,
		Images:       orEmpty(input.Images),
		ExchangeType: input.ExchangeType,
		Condition:    input.Condition,
		Location:     input.Location,
		Categories:   orEmpty(input.Categories),
		Status:       domain.PostStatusAvailable,
		Favorites:    0,
		AuthorID:     authorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPostCreated, authorID, events.PostCreatedPayload{
		PostID:     post.ID,
		Title:      post.Title,
		Categories: post.Categories,
	})
	return post, nil
}

// GetPost loads a single post.
func (s *ListingService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Post", nil)
		}
		return nil, err
	}
	return post, nil
}

// ListPosts returns a page of posts, newest first. Page and limit are
// clamped the way the public API documents them.
func (s *ListingService) ListPosts(ctx context.Context, page, limit int) ([]domain.Post, int, int, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	posts, total, err := s.posts.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return posts, page, limit, total, nil
}

// ListUserPosts returns the posts authored by a user, newest first.
func (s *ListingService) ListUserPosts(ctx context.Context, authorID string) ([]domain.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

// DeletePost removes a post after verifying the caller owns it.
func (s *ListingService) DeletePost(ctx context.Context, callerID, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Post", nil)
		}
		return err
	}
	if post.AuthorID != callerID {
		return apperrors.NewForbidden("Not authorized to delete this post")
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	s.publish(ctx, events.EventPostDeleted, callerID, events.PostDeletedPayload{PostID: postID})
	return nil
}

// RoommateCreateInput describes a roommate listing payload.
type RoommateCreateInput struct {
	Title        string
	Description  string
	Images       []string
	PlacesToLive string
	Region       string
	OnCampus     bool
	Year         int
}

// CreateRoommate persists a new roommate listing. authorID may be empty:
// listings submitted without a session are stored with no author reference.
func (s *ListingService) CreateRoommate(ctx context.Context, authorID string, input RoommateCreateInput) (*domain.Roommate, error) {
	roommate := &domain.Roommate{
		Title:        input.Title,
		Description:  input.Description,
		Images:       orEmpty(input.Images),
		PlacesToLive: input.PlacesToLive,
		Region:       input.Region,
		OnCampus:     input.OnCampus,
		Year:         input.Year,
		Status:       domain.RoommateStatusSearching,
		Favorites:    0,
		AuthorID:     authorID,
	}
	if err := s.roommates.Create(ctx, roommate); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventRoommateCreated, authorID, events.RoommateCreatedPayload{
		RoommateID: roommate.ID,
		Title:      roommate.Title,
		Region:     roommate.Region,
		Anonymous:  authorID == "",
	})
	return roommate, nil
}

// GetRoommate loads a single roommate listing.
func (s *ListingService) GetRoommate(ctx context.Context, id string) (*domain.Roommate, error) {
	roommate, err := s.roommates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Roommate post", nil)
		}
		return nil, err
	}
	return roommate, nil
}

// ListRoommates returns roommate listings, newest first.
func (s *ListingService) ListRoommates(ctx context.Context) ([]domain.Roommate, error) {
	return s.roommates.List(ctx, 100)
}

// Search performs a case-insensitive substring match over post titles and
// descriptions, newest first, capped at the configured maximum. Authors that
// cannot be resolved get a placeholder display name.
func (s *ListingService) Search(ctx context.Context, term string) ([]repository.SearchResult, error) {
	results, err := s.posts.Search(ctx, term, s.searchMax)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].AuthorName == "" {
			results[i].AuthorName = anonymousAuthorName
		}
	}
	return results, nil
}

func (s *ListingService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
