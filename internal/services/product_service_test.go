package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
	"gocart/internal/utils"
	"gocart/internal/validators"
	"gocart/pkg/storage"
)

type fakeStorage struct {
	objects map[string][]byte
	fail    bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(ctx context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	if f.fail {
		return nil, errors.New("storage offline")
	}
	data, err := io.ReadAll(request.Reader)
	if err != nil {
		return nil, err
	}
	f.objects[request.Key] = data
	return &storage.UploadResponse{
		Key:  request.Key,
		URL:  "https://cdn.test/" + request.Key,
		Size: int64(len(data)),
	}, nil
}

func (f *fakeStorage) Download(ctx context.Context, key string) (*storage.DownloadResponse, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return &storage.DownloadResponse{
		Reader: io.NopCloser(bytes.NewReader(data)),
		Size:   int64(len(data)),
	}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) GetURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) FileExists(ctx context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

func pngUpload(t *testing.T, width, height int) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	header := &multipart.FileHeader{
		Filename: "photo.png",
		Size:     int64(buf.Len()),
	}
	return memoryFile{bytes.NewReader(buf.Bytes())}, header
}

func newProductFixture(t *testing.T, products ...*models.Product) (ProductService, *fakeProductRepo, *fakeStorage) {
	t.Helper()
	productRepo := newFakeProductRepo(products...)
	store := newFakeStorage()
	return NewProductService(productRepo, store, testLogger(t)), productRepo, store
}

func TestCreateAndDeleteProduct(t *testing.T) {
	service, productRepo, _ := newProductFixture(t)

	created, err := service.CreateProduct(context.Background(), &validators.ProductCreateRequest{
		Title:       "Mechanical Keyboard",
		Description: "Tenkeyless board with hot-swap switches",
		Category:    "peripherals",
		Price:       129.00,
		Stock:       12,
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	fetched, err := service.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", fetched.Title)
	assert.Equal(t, 12, fetched.Stock)

	require.NoError(t, service.DeleteProduct(context.Background(), created.ID))

	_, err = productRepo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestAdjustStock(t *testing.T) {
	product := &models.Product{Title: "Webcam", Price: 49.00, Stock: 3}
	service, _, _ := newProductFixture(t, product)

	updated, err := service.AdjustStock(context.Background(), product.ID, 7, "restock")
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Stock)

	updated, err = service.AdjustStock(context.Background(), product.ID, -4, "damaged units")
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Stock)
}

func TestAdjustStockCannotGoNegative(t *testing.T) {
	product := &models.Product{Title: "Webcam", Price: 49.00, Stock: 3}
	service, productRepo, _ := newProductFixture(t, product)

	_, err := service.AdjustStock(context.Background(), product.ID, -5, "shrinkage")
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	fetched, err := productRepo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.Stock)
}

func TestUploadImageStoresFileAndUpdatesProduct(t *testing.T) {
	product := &models.Product{Title: "Monitor", Price: 219.00, Stock: 4}
	service, _, store := newProductFixture(t, product)

	file, header := pngUpload(t, 64, 64)

	updated, err := service.UploadImage(context.Background(), product.ID, file, header)
	require.NoError(t, err)

	key := "products/" + product.ID.Hex() + ".png"
	assert.Equal(t, "https://cdn.test/"+key, updated.Image)
	assert.Contains(t, store.objects, key)
}

func TestUploadImageRejectsUnknownFormat(t *testing.T) {
	product := &models.Product{Title: "Monitor", Price: 219.00, Stock: 4}
	service, _, store := newProductFixture(t, product)

	file, header := pngUpload(t, 8, 8)
	header.Filename = "notes.txt"

	_, err := service.UploadImage(context.Background(), product.ID, file, header)
	assert.ErrorIs(t, err, models.ErrInvalidImage)
	assert.Empty(t, store.objects)
}

func TestUploadImageRejectsOversizedFile(t *testing.T) {
	product := &models.Product{Title: "Monitor", Price: 219.00, Stock: 4}
	service, _, store := newProductFixture(t, product)

	file, header := pngUpload(t, 8, 8)
	header.Size = utils.MaxImageSize + 1

	_, err := service.UploadImage(context.Background(), product.ID, file, header)
	assert.ErrorIs(t, err, models.ErrInvalidImage)
	assert.Empty(t, store.objects)
}

func TestUploadImageRejectsCorruptPayload(t *testing.T) {
	product := &models.Product{Title: "Monitor", Price: 219.00, Stock: 4}
	service, _, _ := newProductFixture(t, product)

	file := memoryFile{bytes.NewReader([]byte("definitely not a png"))}
	header := &multipart.FileHeader{Filename: "photo.png", Size: 20}

	_, err := service.UploadImage(context.Background(), product.ID, file, header)
	assert.ErrorIs(t, err, models.ErrInvalidImage)
}

func TestUploadImageUnknownProduct(t *testing.T) {
	service, _, _ := newProductFixture(t)

	file, header := pngUpload(t, 8, 8)

	_, err := service.UploadImage(context.Background(), primitive.NewObjectID(), file, header)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestUploadImageStorageOutage(t *testing.T) {
	product := &models.Product{Title: "Monitor", Price: 219.00, Stock: 4}
	service, _, store := newProductFixture(t, product)
	store.fail = true

	file, header := pngUpload(t, 8, 8)

	_, err := service.UploadImage(context.Background(), product.ID, file, header)
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}

func TestListCategories(t *testing.T) {
	service, _, _ := newProductFixture(t,
		&models.Product{Title: "Keyboard", Category: "peripherals", Price: 89.00, Stock: 2},
		&models.Product{Title: "Mouse", Category: "peripherals", Price: 39.00, Stock: 5},
		&models.Product{Title: "Desk", Category: "furniture", Price: 450.00, Stock: 1},
	)

	categories, err := service.ListCategories(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"peripherals", "furniture"}, categories)
}
