package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Hata sınıfları. Shell katmanı bu sınıflara göre HTTP durumu seçer.
type Kind string

const (
	KindConfiguration Kind = "configuration" // store erişilemez, ayar hatalı
	KindValidation    Kind = "validation"    // bozuk kolon, parse edilemeyen değer
	KindConstraint    Kind = "constraint"    // FK / benzersizlik / check ihlali
	KindNotFound      Kind = "not_found"     // olmayan id / sorgu adı
	KindInternal      Kind = "internal"
)

// PostgreSQL SQLSTATE kodları (Class 23 — Integrity Constraint Violation)
const (
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrCheckViolation      = "23514" // check_violation
	PgErrNotNullViolation    = "23502" // not_null_violation
)

// Error: katmanlar arası taşınan yapılandırılmış hata.
// Ref, ilgili kaydı/kimliği işaret eder (ör: "provider_id=42").
type Error struct {
	Kind    Kind
	Message string
	Ref     string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Ref != "" {
		msg += " (" + e.Ref + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewRef(kind Kind, message, ref string) *Error {
	return &Error{Kind: kind, Message: message, Ref: ref}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf: herhangi bir hatanın sınıfını döndürür; sarılmış *Error yoksa internal sayılır.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus: hata sınıfı -> HTTP durum kodu eşlemesi (shell katmanı kullanır)
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return 400
	case KindNotFound:
		return 404
	case KindConstraint:
		return 409
	case KindConfiguration:
		return 503
	default:
		return 500
	}
}

// FromDB: store'dan dönen hatayı sınıflandırır.
// Duplicate key burada da constraint sayılır; idempotent yükleme bu hatayı hiç üretmez
// çünkü loader ON CONFLICT DO NOTHING ile yazar.
func FromDB(err error, message string) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Message: message, Err: err}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Kind: KindConstraint, Message: message, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrForeignKeyViolation, PgErrUniqueViolation, PgErrCheckViolation, PgErrNotNullViolation:
			return &Error{Kind: KindConstraint, Message: message, Ref: pgErr.ConstraintName, Err: err}
		}
	}

	// SQLite sürücüsü SQLSTATE taşımaz; mesaj üzerinden yakala (testler bu yoldan geçer)
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "CHECK constraint failed") {
		return &Error{Kind: KindConstraint, Message: message, Err: err}
	}

	return &Error{Kind: KindInternal, Message: message, Err: err}
}
