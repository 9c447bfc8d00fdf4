package api_test

import (
	"context"
	"io"

	"github.com/enerlink/enerlink/internal/models"
)

// mockActivityRepo implements api.ActivityRepository with function fields.
type mockActivityRepo struct {
	queryPageFn       func(ctx context.Context, spec models.FilterSpec, page models.PageRequest) (*models.PageResult, error)
	addNoteFn         func(ctx context.Context, actor models.ActorContext, req models.CreateNoteRequest) (*models.ActivityEntry, error)
	exportCSVFn       func(ctx context.Context, spec models.FilterSpec, w io.Writer) (int64, error)
	userOptionsFn     func(ctx context.Context) ([]models.LookupOption, error)
	clientOptionsFn   func(ctx context.Context) ([]models.LookupOption, error)
	pointOptionsFn    func(ctx context.Context, clientIDs []string) ([]models.LookupOption, error)
	contractOptionsFn func(ctx context.Context, pointIDs, clientIDs []string) ([]models.LookupOption, error)
}

func (m *mockActivityRepo) QueryPage(ctx context.Context, spec models.FilterSpec, page models.PageRequest) (*models.PageResult, error) {
	return m.queryPageFn(ctx, spec, page)
}

func (m *mockActivityRepo) AddNote(ctx context.Context, actor models.ActorContext, req models.CreateNoteRequest) (*models.ActivityEntry, error) {
	return m.addNoteFn(ctx, actor, req)
}

func (m *mockActivityRepo) ExportCSV(ctx context.Context, spec models.FilterSpec, w io.Writer) (int64, error) {
	return m.exportCSVFn(ctx, spec, w)
}

func (m *mockActivityRepo) UserOptions(ctx context.Context) ([]models.LookupOption, error) {
	return m.userOptionsFn(ctx)
}

func (m *mockActivityRepo) ClientOptions(ctx context.Context) ([]models.LookupOption, error) {
	return m.clientOptionsFn(ctx)
}

func (m *mockActivityRepo) PointOptions(ctx context.Context, clientIDs []string) ([]models.LookupOption, error) {
	return m.pointOptionsFn(ctx, clientIDs)
}

func (m *mockActivityRepo) ContractOptions(ctx context.Context, pointIDs, clientIDs []string) ([]models.LookupOption, error) {
	return m.contractOptionsFn(ctx, pointIDs, clientIDs)
}

// mockClientRepo implements api.ClientRepository with function fields.
type mockClientRepo struct {
	createFn func(ctx context.Context, actor models.ActorContext, req models.CreateClientRequest) (*models.Client, error)
	getFn    func(ctx context.Context, id string) (*models.Client, error)
	listFn   func(ctx context.Context, limit, offset int) ([]models.Client, error)
	updateFn func(ctx context.Context, actor models.ActorContext, id string, req models.UpdateClientRequest) (*models.Client, error)
	deleteFn func(ctx context.Context, actor models.ActorContext, id string) error
}

func (m *mockClientRepo) Create(ctx context.Context, actor models.ActorContext, req models.CreateClientRequest) (*models.Client, error) {
	return m.createFn(ctx, actor, req)
}

func (m *mockClientRepo) Get(ctx context.Context, id string) (*models.Client, error) {
	return m.getFn(ctx, id)
}

func (m *mockClientRepo) List(ctx context.Context, limit, offset int) ([]models.Client, error) {
	return m.listFn(ctx, limit, offset)
}

func (m *mockClientRepo) Update(ctx context.Context, actor models.ActorContext, id string, req models.UpdateClientRequest) (*models.Client, error) {
	return m.updateFn(ctx, actor, id, req)
}

func (m *mockClientRepo) Delete(ctx context.Context, actor models.ActorContext, id string) error {
	return m.deleteFn(ctx, actor, id)
}

// mockAuthRepo implements api.AuthRepository with function fields.
type mockAuthRepo struct {
	loginFn func(ctx context.Context, req models.LoginRequest) (string, *models.User, error)
}

func (m *mockAuthRepo) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	return m.loginFn(ctx, req)
}

// mockGeocodeRepo implements api.GeocodeRepository with function fields.
type mockGeocodeRepo struct {
	resolveFn func(ctx context.Context, query string) (*models.GeocodeResult, error)
}

func (m *mockGeocodeRepo) Resolve(ctx context.Context, query string) (*models.GeocodeResult, error) {
	return m.resolveFn(ctx, query)
}
