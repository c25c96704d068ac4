package expense

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bizexpense/expense-manager/internal"
	"github.com/bizexpense/expense-manager/internal/catalog"
	expenseDatamodel "github.com/bizexpense/expense-manager/internal/core/datamodel/expense"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MaxFetch caps how many recent records one listing returns.
const MaxFetch = 200

// Repository defines the data access methods for expense records. Records are
// insert-only; there is no update or delete.
type Repository interface {
	Create(record *expenseDatamodel.BusinessExpense) error
	ListRecent(role *catalog.Role, limit int) ([]*expenseDatamodel.BusinessExpense, error)
}

// DocumentStorage is the object storage the service writes attachments to and
// resolves signed links from.
type DocumentStorage interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error)
}

// Service handles expense submission and listing.
type Service struct {
	repo         Repository
	storage      DocumentStorage // nil when storage is not configured
	bucket       string
	signedURLTTL time.Duration
	logger       *slog.Logger
}

func NewService(repo Repository, storage DocumentStorage, bucket string, signedURLTTL time.Duration, logger *slog.Logger) *Service {
	if bucket == "" {
		bucket = internal.DefaultDocumentBucket
	}
	if signedURLTTL <= 0 {
		signedURLTTL = time.Hour
	}
	return &Service{
		repo:         repo,
		storage:      storage,
		bucket:       bucket,
		signedURLTTL: signedURLTTL,
		logger:       logger,
	}
}

// CreateExpense persists a validated submission. With an attachment the
// object upload happens first and a failed upload aborts the whole
// submission; the two writes are not transactional, so an insert failure
// after a successful upload leaves the object behind (logged, accepted).
func (s *Service) CreateExpense(ctx context.Context, dto *CreateExpenseDTO) (*Expense, error) {
	record := NewExpense(dto)

	if dto.Document != nil {
		if s.storage == nil {
			s.logger.Error("submission with attachment but storage not configured")
			return nil, internal.ErrStorageNotConfigured
		}

		path := documentPath(dto.Role, dto.Document.FileName)
		if err := s.storage.Upload(ctx, s.bucket, path, dto.Document.Data, dto.Document.ContentType); err != nil {
			s.logger.Error("document upload failed", "error", err, "bucket", s.bucket, "path", path)
			return nil, internal.NewExternalError("failed to upload document", internal.ErrCodeUploadFailed, err)
		}
		record.AttachDocument(s.bucket, path)
	}

	if err := s.repo.Create(ToDataModel(record)); err != nil {
		if record.HasDocument() {
			// No compensating delete; leave a trace for cleanup.
			s.logger.Error("insert failed after upload, orphaned object",
				"error", err, "bucket", *record.DocumentBucket, "path", *record.DocumentPath)
		} else {
			s.logger.Error("failed to insert expense record", "error", err)
		}
		return nil, internal.NewExternalError("failed to save expense", internal.ErrCodeInsertFailed, err)
	}

	s.logger.Info("expense recorded",
		"done_by", record.ExpenseDoneBy,
		"amount", record.AmountINR,
		"category", record.ExpenseCategory,
		"role", record.ProfileRole,
		"has_document", record.HasDocument())

	return record, nil
}

// ListExpenses returns the most recent records visible to the given role,
// newest expense first, capped at MaxFetch. Query errors degrade to an empty
// list; a missing signed URL degrades to a record without a link. Read paths
// never surface an error to the caller.
func (s *Service) ListExpenses(ctx context.Context, activeRole catalog.Role) []*Expense {
	var scope *catalog.Role
	if !activeRole.Unscoped() {
		scope = &activeRole
	}

	rows, err := s.repo.ListRecent(scope, MaxFetch)
	if err != nil {
		s.logger.Error("failed to fetch expenses", "error", err, "role", activeRole)
		return []*Expense{}
	}

	records := FromDataModelSlice(rows)
	s.resolveDocumentLinks(ctx, records)
	return records
}

// resolveDocumentLinks fills DocumentSignedURL for every record carrying a
// document reference. Resolutions run in parallel and independently; each
// failure only costs that one link.
func (s *Service) resolveDocumentLinks(ctx context.Context, records []*Expense) {
	if s.storage == nil {
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, record := range records {
		record := record
		if !record.HasDocument() {
			continue
		}
		g.Go(func() error {
			url, err := s.storage.SignedURL(ctx, *record.DocumentBucket, *record.DocumentPath, s.signedURLTTL)
			if err != nil {
				s.logger.Warn("failed to sign document URL",
					"error", err, "bucket", *record.DocumentBucket, "path", *record.DocumentPath)
				return nil
			}
			record.DocumentSignedURL = &url
			return nil
		})
	}
	_ = g.Wait()
}

// documentPath builds the object path for an upload: role slug, fresh UUID,
// original extension when present.
func documentPath(role catalog.Role, fileName string) string {
	path := role.Slug() + "/" + uuid.NewString()
	if ext := filepath.Ext(fileName); ext != "" {
		path += ext
	}
	return path
}
