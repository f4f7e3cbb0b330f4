package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/indigo-retail/pos-api/internal/domain"
	"github.com/indigo-retail/pos-api/internal/repository"
	"github.com/indigo-retail/pos-api/internal/service"
	"github.com/indigo-retail/pos-api/internal/storage"
	"github.com/indigo-retail/pos-api/internal/testutil"
)

func setupProductServiceTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createProductService(t *testing.T, db *gorm.DB) *service.ProductService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	return service.NewProductService(repository.NewProductRepository(db), store, zap.NewNop())
}

// createProductServiceWithStorage also returns the base path so tests
// can observe blob cleanup on the filesystem.
func createProductServiceWithStorage(t *testing.T, db *gorm.DB) (*service.ProductService, storage.Storage, string) {
	t.Helper()
	basePath := t.TempDir()
	store, err := storage.NewLocalStorage(basePath, "http://localhost:8080/uploads")
	require.NoError(t, err)
	svc := service.NewProductService(repository.NewProductRepository(db), store, zap.NewNop())
	return svc, store, basePath
}

func TestProductService_Create(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc := createProductService(t, db)
	ctx := context.Background()

	req := &domain.CreateProductRequest{
		Name:        "Wireless Mouse",
		Description: "Ergonomic wireless mouse",
		Stock:       50,
		Price:       decimal.RequireFromString("19.99"),
	}

	dto, err := svc.Create(ctx, req)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, dto.ID)
	assert.Equal(t, "Wireless Mouse", dto.Name)
	assert.Equal(t, 50, dto.Stock)
	assert.True(t, dto.Price.Equal(decimal.RequireFromString("19.99")))
	assert.NotEmpty(t, dto.CreatedAt)
}

func TestProductService_Create_NegativePrice(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc := createProductService(t, db)

	req := &domain.CreateProductRequest{
		Name:  "Broken Product",
		Price: decimal.RequireFromString("-1.00"),
	}

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestProductService_GetByID(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc := createProductService(t, db)
	ctx := context.Background()

	product := testutil.CreateTestProduct(t, db, "USB-C Hub", 25, "34.50")

	dto, err := svc.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, dto.ID)
	assert.Equal(t, "USB-C Hub", dto.Name)
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc := createProductService(t, db)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductService_List(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc := createProductService(t, db)
	ctx := context.Background()

	testutil.CreateTestProduct(t, db, "Wireless Mouse", 50, "19.99")
	testutil.CreateTestProduct(t, db, "Mechanical Keyboard", 30, "79.90")

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductService_Update_OverwritesAllFields(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc := createProductService(t, db)
	ctx := context.Background()

	product := testutil.CreateTestProduct(t, db, "Wireless Mouse", 50, "19.99")

	req := &domain.UpdateProductRequest{
		Name:        "Wireless Mouse v2",
		Description: "",
		Stock:       40,
		Price:       decimal.RequireFromString("24.99"),
	}

	dto, err := svc.Update(ctx, product.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "Wireless Mouse v2", dto.Name)
	assert.Empty(t, dto.Description)
	assert.Equal(t, 40, dto.Stock)
	assert.True(t, dto.Price.Equal(decimal.RequireFromString("24.99")))
}

func TestProductService_Update_NotFound(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc := createProductService(t, db)

	req := &domain.UpdateProductRequest{Name: "Ghost", Price: decimal.Zero}
	_, err := svc.Update(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductService_Delete(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc := createProductService(t, db)
	ctx := context.Background()

	product := testutil.CreateTestProduct(t, db, "Wireless Mouse", 50, "19.99")

	require.NoError(t, svc.Delete(ctx, product.ID))

	_, err := svc.GetByID(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc := createProductService(t, db)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func uploadTestImage(t *testing.T, store storage.Storage, filename string) string {
	t.Helper()
	url, _, err := store.Upload(context.Background(), filename, "image/png", strings.NewReader("png bytes"))
	require.NoError(t, err)
	return url
}

func storedImagePath(basePath, url string) string {
	return filepath.Join(basePath, storage.NameFromURL(url))
}

func TestProductService_Update_RemovesReplacedImage(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc, store, basePath := createProductServiceWithStorage(t, db)
	ctx := context.Background()

	oldURL := uploadTestImage(t, store, "old.png")
	newURL := uploadTestImage(t, store, "new.png")

	product := testutil.CreateTestProduct(t, db, "Wireless Mouse", 50, "19.99")
	require.NoError(t, db.Model(product).Update("image_url", oldURL).Error)

	req := &domain.UpdateProductRequest{
		Name:     "Wireless Mouse",
		ImageURL: newURL,
		Stock:    50,
		Price:    decimal.RequireFromString("19.99"),
	}

	dto, err := svc.Update(ctx, product.ID, req)
	require.NoError(t, err)
	assert.Equal(t, newURL, dto.ImageURL)

	_, err = os.Stat(storedImagePath(basePath, oldURL))
	assert.True(t, os.IsNotExist(err), "replaced image should be removed")
	_, err = os.Stat(storedImagePath(basePath, newURL))
	assert.NoError(t, err, "current image should remain")
}

func TestProductService_Update_KeepsUnchangedImage(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc, store, basePath := createProductServiceWithStorage(t, db)
	ctx := context.Background()

	url := uploadTestImage(t, store, "product.png")

	product := testutil.CreateTestProduct(t, db, "Wireless Mouse", 50, "19.99")
	require.NoError(t, db.Model(product).Update("image_url", url).Error)

	req := &domain.UpdateProductRequest{
		Name:     "Wireless Mouse v2",
		ImageURL: url,
		Stock:    40,
		Price:    decimal.RequireFromString("24.99"),
	}

	_, err := svc.Update(ctx, product.ID, req)
	require.NoError(t, err)

	_, err = os.Stat(storedImagePath(basePath, url))
	assert.NoError(t, err)
}

func TestProductService_Delete_RemovesImage(t *testing.T) {
	db := setupProductServiceTestDB(t)
	svc, store, basePath := createProductServiceWithStorage(t, db)
	ctx := context.Background()

	url := uploadTestImage(t, store, "product.png")

	product := testutil.CreateTestProduct(t, db, "Wireless Mouse", 50, "19.99")
	require.NoError(t, db.Model(product).Update("image_url", url).Error)

	require.NoError(t, svc.Delete(ctx, product.ID))

	_, err := os.Stat(storedImagePath(basePath, url))
	assert.True(t, os.IsNotExist(err), "image should be removed with the product")
}
