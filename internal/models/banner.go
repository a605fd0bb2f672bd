package models

import "fmt"

// PlaceholderBannerRef is served whenever a banner could not be produced.
const PlaceholderBannerRef = "/api/banners/placeholder.png"

// BannerRef points at a play banner. Placeholder banners are never stored.
type BannerRef struct {
	GamePK      int    `json:"game_pk"`
	PlayID      string `json:"play_id"`
	URL         string `json:"url"`
	Placeholder bool   `json:"placeholder"`
}

func PlaceholderBanner(gamePK int, playID string) BannerRef {
	return BannerRef{GamePK: gamePK, PlayID: playID, URL: PlaceholderBannerRef, Placeholder: true}
}

func StoredBanner(gamePK int, playID string) BannerRef {
	return BannerRef{GamePK: gamePK, PlayID: playID, URL: fmt.Sprintf("/api/banners/%d/%s.png", gamePK, playID)}
}

// BannerObjectName is the object-store key of a banner below the configured prefix.
func BannerObjectName(prefix string, gamePK int, playID string) string {
	name := fmt.Sprintf("%d/%s.png", gamePK, playID)
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
