package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrEmptyName = errors.New("name must not be empty")
var ErrSystemOwned = errors.New("system categories cannot be modified")

type Service interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int) (Category, error)
	Create(ctx context.Context, name string) (Category, error)
	Rename(ctx context.Context, id int, name string) (Category, error)
	Delete(ctx context.Context, id int) error
	CreateSub(ctx context.Context, categoryId int, name string) (SubCategory, error)
	RenameSub(ctx context.Context, categoryId int, id int, name string) (SubCategory, error)
	DeleteSub(ctx context.Context, categoryId int, id int) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Create(ctx context.Context, name string) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrEmptyName
	}

	id, err := s.repo.Store(ctx, userId, name)
	if err != nil {
		return Category{}, err
	}
	created := Category{ID: id, Name: name, Owner: OwnerUser, SubCategories: []SubCategory{}}
	s.publish(ctx, event_bus.CategoryCreatedEvent, created.ID, created.Name)
	return created, nil
}

func (s *ServiceImpl) Rename(ctx context.Context, id int, name string) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrEmptyName
	}

	if err := s.requireUserOwned(ctx, userId, id); err != nil {
		return Category{}, err
	}
	renamed, err := s.repo.Rename(ctx, userId, id, name)
	if err != nil {
		return Category{}, err
	}
	if !renamed {
		return Category{}, ErrCategoryNotFound
	}
	s.publish(ctx, event_bus.CategoryRenamedEvent, id, name)
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return err
	}
	if existing.Owner == OwnerSystem {
		return ErrSystemOwned
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("category not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return ErrCategoryNotFound
	}
	s.publish(ctx, event_bus.CategoryDeletedEvent, id, existing.Name)
	return nil
}

func (s *ServiceImpl) CreateSub(ctx context.Context, categoryId int, name string) (SubCategory, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return SubCategory{}, fmt.Errorf("failed to get current user: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return SubCategory{}, ErrEmptyName
	}
	// The parent must be visible to this user; sub-categories may be added to
	// system categories as user-owned entries.
	if _, err := s.repo.Get(ctx, userId, categoryId); err != nil {
		return SubCategory{}, err
	}

	id, err := s.repo.StoreSub(ctx, userId, categoryId, name)
	if err != nil {
		return SubCategory{}, err
	}
	created := SubCategory{ID: id, CategoryID: categoryId, Name: name, Owner: OwnerUser}
	s.publish(ctx, event_bus.SubCategoryCreatedEvent, created.ID, created.Name)
	return created, nil
}

func (s *ServiceImpl) RenameSub(ctx context.Context, categoryId int, id int, name string) (SubCategory, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return SubCategory{}, fmt.Errorf("failed to get current user: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return SubCategory{}, ErrEmptyName
	}

	renamed, err := s.repo.RenameSub(ctx, userId, id, name)
	if err != nil {
		return SubCategory{}, err
	}
	if !renamed {
		return SubCategory{}, ErrSubCategoryNotFound
	}
	s.publish(ctx, event_bus.SubCategoryRenamedEvent, id, name)
	return SubCategory{ID: id, CategoryID: categoryId, Name: name, Owner: OwnerUser}, nil
}

func (s *ServiceImpl) DeleteSub(ctx context.Context, categoryId int, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.DeleteSub(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("sub-category not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return ErrSubCategoryNotFound
	}
	s.publish(ctx, event_bus.SubCategoryDeletedEvent, id, "")
	return nil
}

func (s *ServiceImpl) requireUserOwned(ctx context.Context, userId int, id int) error {
	existing, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return err
	}
	if existing.Owner == OwnerSystem {
		return ErrSystemOwned
	}
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, id int, name string) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.CategoryChanged{Id: id, Name: name}))
	if err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}
