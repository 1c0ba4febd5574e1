package impersonation

import "codeberg.org/actas/server/actas/impersonation"

// BannerResponse carries what the impersonation banner renders
type BannerResponse struct {
	Impersonation *impersonation.Record `json:"impersonation"`
}
