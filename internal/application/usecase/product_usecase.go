package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock se muta solo vía
// ledger; Cost solo vía recepción de compras (promedio ponderado).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Stock inicia en 0; el costo inicial del request es
// la semilla del promedio ponderado.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          in.SKU,
		Barcode:      in.Barcode,
		Name:         in.Name,
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		SupplierID:   in.SupplierID,
		Stock:        decimal.Zero,
		Cost:         in.Cost,
		Price:        in.Price,
		ReorderPoint: in.ReorderPoint,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		Unit:         in.Unit,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Update actualiza los datos maestros. Stock y Cost no se tocan aquí.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != "" && in.SKU != p.SKU {
		dup, err := uc.repo.GetBySKU(companyID, in.SKU)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.ErrDuplicate
		}
		p.SKU = in.SKU
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	p.Barcode = in.Barcode
	p.Description = in.Description
	p.CategoryID = in.CategoryID
	p.SupplierID = in.SupplierID
	if !in.Price.IsNegative() {
		p.Price = in.Price
	}
	p.ReorderPoint = in.ReorderPoint
	p.MinStock = in.MinStock
	p.MaxStock = in.MaxStock
	if in.Unit != "" {
		p.Unit = in.Unit
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return uc.GetByID(companyID, id)
}

// List lista productos con búsqueda por nombre/SKU (insensible a acentos).
func (uc *ProductUseCase) List(companyID, search string, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(companyID, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Barcode:      p.Barcode,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		Stock:        p.Stock,
		Cost:         p.Cost,
		Price:        p.Price,
		ReorderPoint: p.ReorderPoint,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		Unit:         p.Unit,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
