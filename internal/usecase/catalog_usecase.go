package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	repo "github.com/Zaebanec/NexusGear/internal/repository"

	"github.com/shopspring/decimal"
)

// numeric(10,2)に入る上限
var maxPrice = decimal.New(1, 8)

type CatalogUsecase struct {
	categories repo.CategoryRepository
	products   repo.ProductRepository
}

// DI
func NewCatalogUsecase(categories repo.CategoryRepository, products repo.ProductRepository) *CatalogUsecase {
	return &CatalogUsecase{categories: categories, products: products}
}

type CategoryInput struct {
	Name string `json:"name"`
}

type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id"`
}

// =====================
// categories
// =====================

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categories.List(ctx)
	if err != nil {
		return []model.Category{}, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

func (u *CatalogUsecase) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return model.Category{}, notFoundAs(err, ErrCategoryNotFound, "find category")
	}
	return c, nil
}

func (u *CatalogUsecase) CreateCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	name, err := validateCategoryName(in.Name)
	if err != nil {
		return model.Category{}, err
	}
	c, err := u.categories.Create(ctx, model.Category{Name: name})
	if err != nil {
		return model.Category{}, conflictAs(err, "create category")
	}
	return c, nil
}

func (u *CatalogUsecase) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	name, err := validateCategoryName(in.Name)
	if err != nil {
		return model.Category{}, err
	}
	ok, err := u.categories.Update(ctx, model.Category{ID: id, Name: name})
	if err != nil {
		return model.Category{}, conflictAs(err, "update category")
	}
	if !ok {
		return model.Category{}, ErrCategoryNotFound
	}
	return model.Category{ID: id, Name: name}, nil
}

// 商品が残っていればErrConflict
func (u *CatalogUsecase) DeleteCategory(ctx context.Context, id int64) error {
	ok, err := u.categories.Delete(ctx, id)
	if err != nil {
		return conflictAs(err, "delete category")
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

// =====================
// products
// =====================

// カテゴリが無ければErrCategoryNotFound
func (u *CatalogUsecase) ListProducts(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	if categoryID == nil {
		items, err := u.products.List(ctx)
		if err != nil {
			return []model.Product{}, fmt.Errorf("list products: %w", err)
		}
		return items, nil
	}

	if _, err := u.GetCategory(ctx, *categoryID); err != nil {
		return []model.Product{}, err
	}
	items, err := u.products.ListByCategory(ctx, *categoryID)
	if err != nil {
		return []model.Product{}, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, notFoundAs(err, ErrProductNotFound, "find product")
	}
	return p, nil
}

func (u *CatalogUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	p, err := u.validateProduct(ctx, in)
	if err != nil {
		return model.Product{}, err
	}
	created, err := u.products.Create(ctx, p)
	if err != nil {
		return model.Product{}, conflictAs(err, "create product")
	}
	return created, nil
}

// 価格を変えても既存注文のprice_at_purchaseはそのまま
func (u *CatalogUsecase) UpdateProduct(ctx context.Context, id int64, in ProductInput) (model.Product, error) {
	p, err := u.validateProduct(ctx, in)
	if err != nil {
		return model.Product{}, err
	}
	p.ID = id
	ok, err := u.products.Update(ctx, p)
	if err != nil {
		return model.Product{}, conflictAs(err, "update product")
	}
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	return u.GetProduct(ctx, id)
}

// 注文で使われた商品は消せない
func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id int64) error {
	ok, err := u.products.Delete(ctx, id)
	if err != nil {
		return conflictAs(err, "delete product")
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

func (u *CatalogUsecase) validateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 255 {
		return model.Product{}, invalidInput("name is required (max 255)")
	}
	if !in.Price.IsPositive() || in.Price.GreaterThanOrEqual(maxPrice) {
		return model.Product{}, invalidInput("price must be > 0 and < 100000000")
	}
	if !in.Price.Round(2).Equal(in.Price) {
		return model.Product{}, invalidInput("price has more than 2 decimal places")
	}
	if in.CategoryID <= 0 {
		return model.Product{}, ErrCategoryNotFound
	}
	if _, err := u.GetCategory(ctx, in.CategoryID); err != nil {
		return model.Product{}, err
	}

	return model.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		CategoryID:  in.CategoryID,
	}, nil
}

func validateCategoryName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" || len(name) > 100 {
		return "", invalidInput("name is required (max 100)")
	}
	return name, nil
}

func conflictAs(err error, op string) error {
	if errors.Is(err, repo.ErrConflict) {
		return ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}
