package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/decora-api/internal/domain"
)

func TestRespondError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("carregar: %w", domain.ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrInvalidMargin, http.StatusBadRequest, "INVALID_MARGIN"},
		{domain.ErrMissingMaterial, http.StatusUnprocessableEntity, "MISSING_MATERIAL"},
		{domain.ErrInstallmentAlreadyPaid, http.StatusConflict, "ALREADY_PAID"},
		{domain.ErrReceiptTooLarge, http.StatusRequestEntityTooLarge, "RECEIPT_TOO_LARGE"},
		{domain.ErrInvalidPassword, http.StatusUnauthorized, "UNAUTHORIZED"},
		{errors.New("pgx: conexão recusada"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tc.err) })

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		assert.Contains(t, string(body), tc.code)
	}
}

func TestRespondError_InternoNaoVazaDetalhe(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return respondError(c, errors.New("senha do banco: xyz")) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "xyz")
}

func TestTenant_SemEmpresaRetorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if _, ok := tenant(c); !ok {
			return nil
		}
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestParsePaidAt(t *testing.T) {
	got, err := parsePaidAt("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = parsePaidAt("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), got)

	got, err = parsePaidAt("2026-03-10T14:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, 17, got.UTC().Hour())

	_, err = parsePaidAt("10/03/2026")
	assert.Error(t, err)
}

func TestReadUpload_CortaAcimaDoLimite(t *testing.T) {
	h := &ReceivableHandler{maxBytes: 4}

	up, err := h.readUpload(strings.NewReader("0123456789"), "pix.png", "image/png")
	require.NoError(t, err)
	assert.Len(t, up.Data, 5)
	assert.Equal(t, "pix.png", up.FileName)
	assert.Equal(t, "image/png", up.ContentType)
}
