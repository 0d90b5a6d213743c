package server

import (
	"log"
	"net/http"
	"sync/atomic"
)

type handler struct {
	page atomic.Pointer[[]byte]
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
	case http.MethodHead:
	default:
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	if req.URL.Path != "/" {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		if req.Method == http.MethodGet {
			w.Write([]byte("not found"))
		}
		return
	}

	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	if req.Method == http.MethodHead {
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(*h.page.Load()); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}
