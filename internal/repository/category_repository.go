package repository

import (
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type CategoryRepository struct {
	store *store.Store
}

func NewCategoryRepository(s *store.Store) *CategoryRepository {
	return &CategoryRepository{store: s}
}

func (r *CategoryRepository) load() ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.store.Read(CategoriesFile, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// List returns every category.
func (r *CategoryRepository) List() ([]models.Category, error) {
	unlock := r.store.Lock(CategoriesFile)
	defer unlock()
	return r.load()
}

// Get returns the category with the given id.
func (r *CategoryRepository) Get(id string) (*models.Category, error) {
	unlock := r.store.Lock(CategoriesFile)
	defer unlock()

	categories, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new category; the id must be unique.
func (r *CategoryRepository) Create(category *models.Category) error {
	unlock := r.store.Lock(CategoriesFile)
	defer unlock()

	categories, err := r.load()
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.ID == category.ID {
			return ErrDuplicate
		}
	}
	categories = append(categories, *category)
	return r.store.Write(CategoriesFile, categories)
}

// Update applies fn to the matching record and persists the result.
func (r *CategoryRepository) Update(id string, fn func(*models.Category)) (*models.Category, error) {
	unlock := r.store.Lock(CategoriesFile)
	defer unlock()

	categories, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			fn(&categories[i])
			if err := r.store.Write(CategoriesFile, categories); err != nil {
				return nil, err
			}
			c := categories[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the category with the given id.
func (r *CategoryRepository) Delete(id string) error {
	unlock := r.store.Lock(CategoriesFile)
	defer unlock()

	categories, err := r.load()
	if err != nil {
		return err
	}
	filtered := categories[:0:0]
	for _, c := range categories {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == len(categories) {
		return ErrNotFound
	}
	return r.store.Write(CategoriesFile, filtered)
}
