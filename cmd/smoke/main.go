// Command smoke runs a full order flow against a running storefront server:
// browse, add to cart (including a quantity the stock cannot cover), check
// out, and confirm the cart was cleared.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	baseURL := os.Getenv("STOREFRONT_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	customerID := os.Getenv("CUSTOMER_ID")
	if customerID == "" {
		customerID = "demo"
	}

	resp := get(baseURL + "/health")
	log.Printf("health: %v", resp["status"])

	products := get(baseURL + "/api/products")["products"].([]any)
	if len(products) == 0 {
		log.Fatal("no products in catalog")
	}
	first := products[0].(map[string]any)
	productID := first["id"].(string)
	stock := int(first["stock"].(float64))
	log.Printf("first product: %s (%s), stock %d", first["name"], productID, stock)

	// Normal add
	view := post(baseURL+"/api/cart/items", "", map[string]any{"product_id": productID, "quantity": 1})
	log.Printf("added 1: item_count=%v subtotal=%v", view["item_count"], view["subtotal"])

	// Over-stock add must clamp, not fail
	view = post(baseURL+"/api/cart/items", "", map[string]any{"product_id": productID, "quantity": stock + 100})
	if view["capped"] != true {
		log.Fatalf("expected capped add, got %v", view)
	}
	log.Printf("over-stock add clamped: %v", view["message"])

	receipt := post(baseURL+"/api/checkout", customerID, map[string]any{
		"name":    "Smoke Tester",
		"email":   "smoke@example.com",
		"phone":   "254711111111",
		"address": "Test Lane 1",
	})
	if receipt["order_id"] == nil {
		log.Fatalf("checkout failed: %v", receipt["message"])
	}
	log.Printf("order placed: id=%v total=%v notification_sent=%v",
		receipt["order_id"], receipt["grand_total"], receipt["notification_sent"])

	view = get(baseURL + "/api/cart")
	if count, _ := view["item_count"].(float64); count != 0 {
		log.Fatalf("expected empty cart after checkout, got %v items", count)
	}
	fmt.Println("PASS: full order flow completed and cart cleared")
}

func get(url string) map[string]any {
	resp, err := http.Get(url)
	if err != nil {
		log.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	return decode(resp)
}

func post(url, customerID string, payload map[string]any) map[string]any {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Fatalf("POST %s: %v", url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if customerID != "" {
		req.Header.Set("X-Customer-ID", customerID)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	return decode(resp)
}

func decode(resp *http.Response) map[string]any {
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("decode %s: %v", resp.Request.URL, err)
	}
	return out
}
