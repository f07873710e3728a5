package orders

import (
	"context"
	"strings"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/pkg/clock"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/pagination"
	"github.com/google/uuid"
)

// Service exposes order history and placement.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, params ListParams) (*ListResult, error)
	Place(ctx context.Context, userID uuid.UUID, req PlaceRequest) (*Order, error)
}

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	List(ctx context.Context, params listOrdersParams) ([]models.Order, *pagination.Cursor, error)
}

type productLookup interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]catalog.Product, error)
}

type ServiceParams struct {
	Repo     orderRepository
	Products productLookup
	Rules    pricing.Rules
	Clock    clock.Clock
}

type service struct {
	repo     orderRepository
	products productLookup
	rules    pricing.Rules
	clock    clock.Clock
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repository is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product lookup is required")
	}
	clk := params.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{repo: params.Repo, products: params.Products, rules: params.Rules, clock: clk}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params ListParams) (*ListResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	query := listOrdersParams{UserID: userID, Limit: params.Limit}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	result := &ListResult{Orders: make([]Order, 0, len(rows))}
	for _, row := range rows {
		result.Orders = append(result.Orders, FromModel(row))
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

// Place prices the lines from the catalog, never from the client, and
// stores the order as processing with payment pending.
func (s *service) Place(ctx context.Context, userID uuid.UUID, req PlaceRequest) (*Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	if len(req.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order has no lines")
	}
	if !req.ShippingMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping method")
	}
	if !req.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	ids := make([]string, 0, len(req.Lines))
	for _, l := range req.Lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup products")
	}

	lines, subtotal, err := priceLines(req.Lines, products)
	if err != nil {
		return nil, err
	}
	totals := pricing.Quote(subtotal, req.ShippingMethod, s.rules)
	if req.Expected != nil && (req.Expected.Subtotal != totals.Subtotal || req.Expected.Total != totals.Total) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order totals changed").
			WithDetails(map[string]any{"expected": req.Expected, "actual": totals})
	}

	addr := req.Address
	addr.Email = strings.ToLower(strings.TrimSpace(addr.Email))
	order := &models.Order{
		UserID:         userID,
		Lines:          lines,
		Address:        models.ShippingAddress(addr),
		Subtotal:       totals.Subtotal,
		Shipping:       totals.Shipping,
		Tax:            totals.Tax,
		Total:          totals.Total,
		Currency:       totals.Currency,
		ShippingMethod: req.ShippingMethod,
		PaymentMethod:  req.PaymentMethod,
		Status:         enums.OrderStatusProcessing,
		PaymentStatus:  enums.PaymentStatusPending,
		CreatedAt:      s.clock.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	out := FromModel(*created)
	return &out, nil
}

func priceLines(inputs []LineInput, products map[string]catalog.Product) ([]models.OrderLine, int64, error) {
	lines := make([]models.OrderLine, 0, len(inputs))
	var subtotal int64
	for i, in := range inputs {
		p, ok := products[in.ProductID]
		if !ok {
			return nil, 0, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"line": i, "product_id": in.ProductID})
		}
		if in.Quantity < 1 || !p.HasSize(in.Size) || !p.HasColor(in.Color) {
			return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid order line").
				WithDetails(map[string]any{"line": i, "product_id": in.ProductID})
		}
		lines = append(lines, models.OrderLine{
			ProductID: p.ID,
			Name:      p.Name,
			Slug:      p.Slug,
			Image:     p.PrimaryImage(),
			Size:      in.Size,
			Color:     in.Color,
			Quantity:  in.Quantity,
			UnitPrice: p.Price,
		})
		subtotal += p.Price * int64(in.Quantity)
	}
	return lines, subtotal, nil
}
