package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/deppfellow/kringe-music/internal/errs"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "unique violation",
			err:    &pgconn.PgError{Code: "23505", Severity: "ERROR", TableName: "users", ConstraintName: "users_email_key"},
			status: http.StatusBadRequest,
			code:   "USER_ALREADY_EXISTS",
		},
		{
			name:   "foreign key violation",
			err:    fmt.Errorf("insert track: %w", &pgconn.PgError{Code: "23503", TableName: "tracks", ColumnName: "artist_id"}),
			status: http.StatusBadRequest,
			code:   "TRACK_NOT_FOUND",
		},
		{
			name:   "check violation",
			err:    &pgconn.PgError{Code: "23514", TableName: "feedback"},
			status: http.StatusBadRequest,
			code:   "FEEDBACK_INVALID",
		},
		{
			name:   "unknown pg error",
			err:    &pgconn.PgError{Code: "XX000"},
			status: http.StatusInternalServerError,
			code:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:   "pgx no rows",
			err:    fmt.Errorf("get track: %w", pgx.ErrNoRows),
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "mongo no documents",
			err:    mongo.ErrNoDocuments,
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "plain error",
			err:    errors.New("connection reset"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			if !errors.As(HandleError(tt.err), &httpErr) {
				t.Fatal("HandleError did not return *errs.HTTPError")
			}
			if httpErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", httpErr.Status, tt.status)
			}
			if httpErr.Code != tt.code {
				t.Errorf("Code = %q, want %q", httpErr.Code, tt.code)
			}
		})
	}
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	in := errs.NewRejectedError("taken", nil)
	if out := HandleError(in); out != in {
		t.Errorf("HandleError(HTTPError) = %v, want the same value", out)
	}
}

func TestUniqueColumn(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "email"},
		{&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}, "login"},
		{&pgconn.PgError{Code: "23505", ConstraintName: "unique_users_login"}, "login"},
		{&pgconn.PgError{Code: "23503", ConstraintName: "users_email_key"}, ""},
		{errors.New("boom"), ""},
	}

	for _, tt := range tests {
		if got := UniqueColumn(tt.err); got != tt.want {
			t.Errorf("UniqueColumn(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestErrCode(t *testing.T) {
	if got := ErrCode(&pgconn.PgError{Code: "23502"}); got != NotNullViolation {
		t.Errorf("ErrCode = %q, want %q", got, NotNullViolation)
	}
	if got := ErrCode(errors.New("x")); got != Other {
		t.Errorf("ErrCode = %q, want %q", got, Other)
	}
}

func TestHumanizeText(t *testing.T) {
	if got := humanizeText("artist_genre"); got != "Artist Genre" {
		t.Errorf("humanizeText = %q, want %q", got, "Artist Genre")
	}
}
