package usecase

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/molivares/tiendasim/internal/domain"
)

// Codec de sesión: serializa carrito y preferencias hacia los dos slots
// del SessionStore. La lectura es soft-fail: cualquier dato corrupto se
// descarta y la sesión arranca limpia; un estado local roto nunca puede
// impedir el arranque.

func saveSession(ctx context.Context, store domain.SessionStore, lines []domain.CartLine, prefs domain.Preferences) error {
	cartRaw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	prefsRaw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, domain.SlotCart, cartRaw); err != nil {
		return err
	}
	return store.Save(ctx, domain.SlotPrefs, prefsRaw)
}

func loadSession(ctx context.Context, store domain.SessionStore) ([]domain.CartLine, domain.Preferences) {
	prefs := domain.DefaultPreferences()
	var lines []domain.CartLine

	if raw, err := store.Load(ctx, domain.SlotCart); err != nil {
		log.Warn().Err(err).Msg("leer slot de carrito")
	} else if len(raw) > 0 {
		if err := json.Unmarshal(raw, &lines); err != nil {
			log.Warn().Err(err).Msg("slot de carrito corrupto, se descarta")
			lines = nil
		}
	}

	if raw, err := store.Load(ctx, domain.SlotPrefs); err != nil {
		log.Warn().Err(err).Msg("leer slot de preferencias")
	} else if len(raw) > 0 {
		if err := json.Unmarshal(raw, &prefs); err != nil {
			log.Warn().Err(err).Msg("slot de preferencias corrupto, se descarta")
			prefs = domain.DefaultPreferences()
		}
	}
	if prefs.Sort == "" {
		prefs.Sort = domain.SortRelevance
	}
	return lines, prefs
}
