package server

import (
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// handleJoinQR renders a QR code for the room's join link, for showing
// on a shared screen.
func (s *Server) handleJoinQR(w http.ResponseWriter, r *http.Request) {
	code := normalizeCode(r.PathValue("code"))
	if _, ok := s.store.GetRoom(code); !ok {
		http.NotFound(w, r)
		return
	}
	joinURL := strings.TrimRight(s.cfg.PublicURL, "/") + "/?code=" + code
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render qr code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
