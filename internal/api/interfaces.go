package api

import (
	"context"
	"io"

	"github.com/enerlink/enerlink/internal/models"
)

// ActivityRepository defines the activity log operations used by ActivityHandler.
type ActivityRepository interface {
	QueryPage(ctx context.Context, spec models.FilterSpec, page models.PageRequest) (*models.PageResult, error)
	AddNote(ctx context.Context, actor models.ActorContext, req models.CreateNoteRequest) (*models.ActivityEntry, error)
	ExportCSV(ctx context.Context, spec models.FilterSpec, w io.Writer) (int64, error)
	UserOptions(ctx context.Context) ([]models.LookupOption, error)
	ClientOptions(ctx context.Context) ([]models.LookupOption, error)
	PointOptions(ctx context.Context, clientIDs []string) ([]models.LookupOption, error)
	ContractOptions(ctx context.Context, pointIDs, clientIDs []string) ([]models.LookupOption, error)
}

// ClientRepository defines client operations used by ClientHandler.
type ClientRepository interface {
	Create(ctx context.Context, actor models.ActorContext, req models.CreateClientRequest) (*models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	List(ctx context.Context, limit, offset int) ([]models.Client, error)
	Update(ctx context.Context, actor models.ActorContext, id string, req models.UpdateClientRequest) (*models.Client, error)
	Delete(ctx context.Context, actor models.ActorContext, id string) error
}

// PointRepository defines supply point operations used by PointHandler.
type PointRepository interface {
	Create(ctx context.Context, actor models.ActorContext, req models.CreateSupplyPointRequest) (*models.SupplyPoint, error)
	Get(ctx context.Context, id string) (*models.SupplyPoint, error)
	ListByClient(ctx context.Context, clientID string) ([]models.SupplyPoint, error)
	Update(ctx context.Context, actor models.ActorContext, id string, req models.UpdateSupplyPointRequest) (*models.SupplyPoint, error)
	Delete(ctx context.Context, actor models.ActorContext, id string) error
}

// ContractRepository defines contract operations used by ContractHandler.
type ContractRepository interface {
	Create(ctx context.Context, actor models.ActorContext, req models.CreateContractRequest) (*models.Contract, error)
	Get(ctx context.Context, id string) (*models.Contract, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Contract, error)
	Update(ctx context.Context, actor models.ActorContext, id string, req models.UpdateContractRequest) (*models.Contract, error)
	Delete(ctx context.Context, actor models.ActorContext, id string) error
}

// InvoiceRepository defines invoice operations used by InvoiceHandler.
type InvoiceRepository interface {
	Create(ctx context.Context, actor models.ActorContext, req models.CreateInvoiceRequest) (*models.Invoice, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Invoice, error)
	MarkPaid(ctx context.Context, actor models.ActorContext, id string) (*models.Invoice, error)
	Delete(ctx context.Context, actor models.ActorContext, id string) error
}

// AuthRepository defines the login operation used by AuthHandler.
type AuthRepository interface {
	Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error)
}

// GeocodeRepository defines the address resolution used by GeocodeHandler.
type GeocodeRepository interface {
	Resolve(ctx context.Context, query string) (*models.GeocodeResult, error)
}
