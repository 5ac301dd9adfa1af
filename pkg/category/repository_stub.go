package category

import (
	"context"
	"sort"
)

type StubRepository struct {
	nextId     int
	categories map[int]Category
	subs       map[int]SubCategory
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		nextId:     0,
		categories: map[int]Category{},
		subs:       map[int]SubCategory{},
	}
}

// Seed adds a category bypassing ownership rules, for test setup.
func (s *StubRepository) Seed(category Category) Category {
	s.nextId++
	category.ID = s.nextId
	if category.SubCategories == nil {
		category.SubCategories = []SubCategory{}
	}
	s.categories[category.ID] = category
	return category
}

func (s *StubRepository) GetAll(ctx context.Context, userId int) ([]Category, error) {
	result := make([]Category, 0, len(s.categories))
	for _, category := range s.categories {
		result = append(result, s.withSubs(category))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *StubRepository) Get(ctx context.Context, userId int, id int) (Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return s.withSubs(category), nil
}

func (s *StubRepository) Store(ctx context.Context, userId int, name string) (int, error) {
	s.nextId++
	s.categories[s.nextId] = Category{ID: s.nextId, Name: name, Owner: OwnerUser, SubCategories: []SubCategory{}}
	return s.nextId, nil
}

func (s *StubRepository) Rename(ctx context.Context, userId int, id int, name string) (bool, error) {
	category, ok := s.categories[id]
	if !ok || category.Owner != OwnerUser {
		return false, nil
	}
	category.Name = name
	s.categories[id] = category
	return true, nil
}

func (s *StubRepository) Delete(ctx context.Context, userId int, id int) (bool, error) {
	category, ok := s.categories[id]
	if !ok || category.Owner != OwnerUser {
		return false, nil
	}
	delete(s.categories, id)
	for subId, sub := range s.subs {
		if sub.CategoryID == id {
			delete(s.subs, subId)
		}
	}
	return true, nil
}

func (s *StubRepository) StoreSub(ctx context.Context, userId int, categoryId int, name string) (int, error) {
	s.nextId++
	s.subs[s.nextId] = SubCategory{ID: s.nextId, CategoryID: categoryId, Name: name, Owner: OwnerUser}
	return s.nextId, nil
}

func (s *StubRepository) RenameSub(ctx context.Context, userId int, id int, name string) (bool, error) {
	sub, ok := s.subs[id]
	if !ok || sub.Owner != OwnerUser {
		return false, nil
	}
	sub.Name = name
	s.subs[id] = sub
	return true, nil
}

func (s *StubRepository) DeleteSub(ctx context.Context, userId int, id int) (bool, error) {
	sub, ok := s.subs[id]
	if !ok || sub.Owner != OwnerUser {
		return false, nil
	}
	delete(s.subs, id)
	return true, nil
}

func (s *StubRepository) withSubs(category Category) Category {
	subs := []SubCategory{}
	for _, sub := range s.subs {
		if sub.CategoryID == category.ID {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })
	category.SubCategories = subs
	return category
}
