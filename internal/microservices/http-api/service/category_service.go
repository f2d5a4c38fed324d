package service

import (
	"context"
	"regexp"
	"strings"

	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/pkg/apperrors"
)

const categorySlugLength = 100

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type CategoryService interface {
	List(ctx context.Context, f repository.CategoryFilter) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, id int64) (*dto.CategoryResponse, error)
	Create(ctx context.Context, actor authz.Subject, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, actor authz.Subject, id int64, req dto.CategoryRequest, partial bool) (*dto.CategoryResponse, error)
	// Delete deactivates the category. Announcements keep their reference.
	Delete(ctx context.Context, actor authz.Subject, id int64) error
	ListHashtags(ctx context.Context, search, ordering string) ([]dto.HashtagResponse, error)
}

type categoryService struct {
	repos repository.Repositories
	cache StatsCache
}

func NewCategoryService(repos repository.Repositories, cache StatsCache) CategoryService {
	return &categoryService{repos: repos, cache: cache}
}

func (s *categoryService) List(ctx context.Context, f repository.CategoryFilter) ([]dto.CategoryResponse, error) {
	categories, err := s.repos.Categories.ListActive(ctx, f)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, dto.FromModelToCategoryResponse(&categories[i]))
	}
	return out, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := s.repos.Categories.FindActiveByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Category not found")
	}
	resp := dto.FromModelToCategoryResponse(c)
	return &resp, nil
}

func (s *categoryService) Create(ctx context.Context, actor authz.Subject, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := authz.Authorize(actor, authz.Category, authz.Create, ""); err != nil {
		return nil, err
	}
	if req.Name == nil {
		return nil, apperrors.Validation("name", "This field is required.")
	}

	c := &models.Category{Color: models.DefaultCategoryColor, IsActive: true}
	if actor.UserID != "" {
		createdBy := actor.UserID
		c.CreatedByID = &createdBy
	}
	if err := applyCategoryRequest(c, req); err != nil {
		return nil, err
	}

	if err := s.repos.Categories.Create(ctx, c); err != nil {
		return nil, categoryWriteError(err)
	}
	invalidateStats(ctx, s.cache)
	resp := dto.FromModelToCategoryResponse(c)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, actor authz.Subject, id int64, req dto.CategoryRequest, partial bool) (*dto.CategoryResponse, error) {
	if err := authz.Authorize(actor, authz.Category, authz.Update, ""); err != nil {
		return nil, err
	}
	if !partial && req.Name == nil {
		return nil, apperrors.Validation("name", "This field is required.")
	}

	c, err := s.repos.Categories.FindActiveByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Category not found")
	}
	if err := applyCategoryRequest(c, req); err != nil {
		return nil, err
	}
	if err := s.repos.Categories.Update(ctx, c); err != nil {
		return nil, categoryWriteError(err)
	}
	invalidateStats(ctx, s.cache)
	resp := dto.FromModelToCategoryResponse(c)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, actor authz.Subject, id int64) error {
	if err := authz.Authorize(actor, authz.Category, authz.Delete, ""); err != nil {
		return err
	}
	c, err := s.repos.Categories.FindActiveByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Category not found")
	}
	c.IsActive = false
	if err := s.repos.Categories.Update(ctx, c); err != nil {
		return apperrors.Internal(internalMessage, err)
	}
	invalidateStats(ctx, s.cache)
	return nil
}

func (s *categoryService) ListHashtags(ctx context.Context, search, ordering string) ([]dto.HashtagResponse, error) {
	hashtags, err := s.repos.Hashtags.List(ctx, strings.TrimSpace(search), ordering)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	out := make([]dto.HashtagResponse, 0, len(hashtags))
	for i := range hashtags {
		out = append(out, dto.FromModelToHashtagResponse(&hashtags[i]))
	}
	return out, nil
}

// applyCategoryRequest copies the non-nil fields and re-derives the slug when the name changes.
func applyCategoryRequest(c *models.Category, req dto.CategoryRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return apperrors.Validation("name", "This field may not be blank.")
		}
		if name != c.Name || c.Slug == "" {
			c.Name = name
			if c.Slug = Slugify(name, categorySlugLength); c.Slug == "" {
				c.Slug = uniqueSuffix("category", categorySlugLength)
			}
		}
	}
	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.Color != nil {
		color := strings.TrimSpace(*req.Color)
		if color == "" {
			color = models.DefaultCategoryColor
		}
		if !hexColor.MatchString(color) {
			return apperrors.Validation("color", "Enter a hex color such as #3B82F6.")
		}
		c.Color = strings.ToUpper(color)
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return nil
}

func categoryWriteError(err error) error {
	if repository.IsDuplicate(err) {
		return apperrors.Validation("name", "category with this name already exists.")
	}
	return apperrors.Internal(internalMessage, err)
}
