package services

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"inventory/internal/apperrors"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/sanitize"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Messages carried by the error envelopes of the product operations.
const (
	MsgCreateIncomplete = "Unable to create product. Data is incomplete."
	MsgCreateFailed     = "Unable to create product."
	MsgMissingID        = "Missing ID parameter."
	MsgMissingProductID = "Missing product ID."
	MsgNotFound         = "Product not found."
	MsgNoFieldsToUpdate = "No fields to update."
	MsgUpdateFailed     = "Unable to update product."
	MsgDeleteFailed     = "Unable to delete product."
	MsgInvalidQuantity  = "Invalid numeric value for quantity."
	MsgInvalidPrice     = "Invalid numeric value for price."
)

// EventPublisher delivers product events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
	log       *logrus.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log *logrus.Logger) *ProductService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	validate := validator.New()
	validate.RegisterCustomTypeFunc(fieldValue, models.Field{})

	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validate,
		log:       log,
	}
}

// fieldValue lets the validator see a Field as its text, with falsy values
// collapsed to "" so that `required` rejects them.
func fieldValue(v reflect.Value) interface{} {
	f, ok := v.Interface().(models.Field)
	if !ok || f.Blank() {
		return ""
	}
	return f.Value
}

// CreateProduct validates, sanitizes and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewValidationError(MsgCreateIncomplete)
	}

	quantity, err := parseQuantity(sanitize.Text(req.Quantity.Value))
	if err != nil {
		return nil, err
	}
	price, err := parsePrice(sanitize.Text(req.Price.Value))
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        sanitize.Text(req.Name.Value),
		Description: sanitize.Text(req.Description.Value),
		Category:    sanitize.Text(req.Category.Value),
		Quantity:    quantity,
		Price:       price,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrNoRowsAffected) {
			return nil, apperrors.NewOperationError(MsgCreateFailed, err)
		}
		return nil, apperrors.FromStore(err, MsgCreateFailed)
	}

	s.publish(ctx, models.EventProductCreated, product.ID, nil)
	return product, nil
}

// GetAllProducts retrieves every product, highest id first. An empty table
// yields an empty slice. Any store failure on a read is a StoreError.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProductByID retrieves a single product. id is the raw request
// parameter; only its absence is a validation error.
func (s *ProductService) GetProductByID(ctx context.Context, id models.Field) (*models.Product, error) {
	if !id.Present {
		return nil, apperrors.NewValidationError(MsgMissingID)
	}

	productID, ok := parseID(id.Value)
	if !ok {
		return nil, apperrors.NewNotFoundError(MsgNotFound)
	}

	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.NewNotFoundError(MsgNotFound)
		}
		return nil, apperrors.NewStoreError(err)
	}
	return product, nil
}

// UpdateProduct applies a partial update. The existence check and the
// update share one transaction.
func (s *ProductService) UpdateProduct(ctx context.Context, req models.UpdateProductRequest) error {
	if req.ID.Blank() {
		return apperrors.NewValidationError(MsgMissingProductID)
	}
	productID, ok := parseID(req.ID.Value)
	if !ok {
		return apperrors.NewNotFoundError(MsgNotFound)
	}

	var columns []string
	err := s.repo.Transaction(ctx, func(repo repositories.ProductRepository) error {
		if _, err := repo.GetByID(ctx, productID); err != nil {
			if errors.Is(err, repositories.ErrProductNotFound) {
				return apperrors.NewNotFoundError(MsgNotFound)
			}
			return apperrors.FromStore(err, MsgUpdateFailed)
		}

		changes, err := buildChanges(req)
		if err != nil {
			return err
		}
		if changes.Empty() {
			return apperrors.NewValidationError(MsgNoFieldsToUpdate)
		}

		if err := repo.Update(ctx, productID, changes); err != nil {
			return apperrors.FromStore(err, MsgUpdateFailed)
		}
		columns = changes.Columns()
		return nil
	})
	if err != nil {
		if apperrors.Classified(err) {
			return err
		}
		return apperrors.FromStore(err, MsgUpdateFailed)
	}

	s.publish(ctx, models.EventProductUpdated, productID, columns)
	return nil
}

// DeleteProduct physically removes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, req models.DeleteProductRequest) error {
	if req.ID.Blank() {
		return apperrors.NewValidationError(MsgMissingProductID)
	}
	productID, ok := parseID(req.ID.Value)
	if !ok {
		return apperrors.NewNotFoundError(MsgNotFound)
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return apperrors.NewNotFoundError(MsgNotFound)
		}
		return apperrors.FromStore(err, MsgDeleteFailed)
	}

	s.publish(ctx, models.EventProductDeleted, productID, nil)
	return nil
}

// CheckHealth reports whether the store is reachable.
func (s *ProductService) CheckHealth(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// EventsEnabled reports whether a publisher is configured.
func (s *ProductService) EventsEnabled() bool {
	return s.publisher != nil
}

// buildChanges collects the supplied columns. name and category must be
// non-blank to count; description, quantity and price only need to be
// present.
func buildChanges(req models.UpdateProductRequest) (models.ProductChanges, error) {
	var changes models.ProductChanges

	if !req.Name.Blank() {
		changes.Set("name", sanitize.Text(req.Name.Value))
	}
	if req.Description.Present {
		changes.Set("description", sanitize.Text(req.Description.Value))
	}
	if !req.Category.Blank() {
		changes.Set("category", sanitize.Text(req.Category.Value))
	}
	if req.Quantity.Present {
		quantity, err := parseQuantity(sanitize.Text(req.Quantity.Value))
		if err != nil {
			return changes, err
		}
		changes.Set("quantity", quantity)
	}
	if req.Price.Present {
		price, err := parsePrice(sanitize.Text(req.Price.Value))
		if err != nil {
			return changes, err
		}
		changes.Set("price", price)
	}

	return changes, nil
}

func (s *ProductService) publish(ctx context.Context, eventType string, id uint, columns []string) {
	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Columns:    columns,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(ctx, event); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"event":      eventType,
			"product_id": id,
		}).Warn("failed to publish product event")
	}
}

// parseID sanitizes a raw id and converts it to a primary key.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(sanitize.Text(raw)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

var (
	minQuantity = decimal.NewFromInt(math.MinInt32)
	maxQuantity = decimal.NewFromInt(math.MaxInt32)
)

// parseQuantity accepts whole numbers that fit the integer column.
func parseQuantity(raw string) (int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.Equal(d.Truncate(0)) ||
		d.LessThan(minQuantity) || d.GreaterThan(maxQuantity) {
		return 0, apperrors.NewValidationError(MsgInvalidQuantity)
	}
	return int(d.IntPart()), nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, apperrors.NewValidationError(MsgInvalidPrice)
	}
	return d.Round(2), nil
}
