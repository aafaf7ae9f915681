package catalogfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/molivares/tiendasim/internal/domain"
)

// Source lee el catálogo desde un documento JSON, ya sea una URL http(s)
// o un archivo local. Se consume una vez al arranque; no hay polling ni
// recarga.
type Source struct {
	location string
	client   *http.Client
}

func New(location string) *Source {
	return &Source{
		location: location,
		client:   &http.Client{Timeout: 20 * time.Second},
	}
}

func (s *Source) Load(ctx context.Context) (domain.Catalog, error) {
	var raw []byte
	var err error
	if strings.HasPrefix(s.location, "http://") || strings.HasPrefix(s.location, "https://") {
		raw, err = s.fetch(ctx)
	} else {
		raw, err = os.ReadFile(s.location)
		if err != nil {
			err = &domain.LoadError{Op: "fetch", Err: err}
		}
	}
	if err != nil {
		return domain.Catalog{}, err
	}

	var cat domain.Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return domain.Catalog{}, &domain.LoadError{Op: "schema", Err: err}
	}
	log.Info().Str("source", s.location).Int("products", len(cat.Products)).Msg("catálogo cargado")
	return cat, nil
}

func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, &domain.LoadError{Op: "fetch", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.LoadError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.LoadError{Op: "status", Reason: fmt.Sprintf("status code: %d", resp.StatusCode)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.LoadError{Op: "fetch", Err: err}
	}
	return body, nil
}
