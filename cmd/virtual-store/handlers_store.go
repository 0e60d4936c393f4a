package main

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const welcomeMessage = "Welcome to the Virtual Store!"

type purchaseResponse struct {
	Message string `json:"message"`
	Order
}

func (s *server) homeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

func (s *server) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.List())
}

func (s *server) buyProductHandler(w http.ResponseWriter, r *http.Request) {
	// Route pattern guarantees digits; overflow is treated as an unknown id.
	id, err := strconv.Atoi(mux.Vars(r)["productId"])
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Product not found")
		return
	}
	product, ok := s.catalog.Find(id)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, purchaseResponse{
		Message: "Purchase successful",
		Order:   newOrder(s.rnd, product),
	})
}
