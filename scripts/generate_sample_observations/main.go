package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Generates a sample observations file for local testing of the catalog
// reconcile command. Run with: go run ./scripts/generate_sample_observations
func main() {
	samples := []map[string]interface{}{
		{"id": "282780", "name": "fresh orange juice", "size": "250ml", "price": 4.00, "category": []string{"juice"}},
		{"id": "123456", "name": "beef mince premium", "size": "per kg", "price": 18.50, "category": []string{"beef-lamb"}},
		{"id": "771234", "name": "yoghurt pouches", "size": "4 x 107mL", "price": 6.00, "category": []string{"yoghurt"}},
		{"id": "550021", "name": "muesli bars chocolate", "size": "30g 12pack", "price": 5.50, "category": []string{"muesli-bars"}},
		{"id": "990001", "name": "standard milk", "size": "2L", "price": 3.80, "category": []string{"milk"}},
		{"id": "440009", "name": "avocado", "size": "Large", "price": 2.50},
	}

	dir := "data"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal(err)
	}

	path := filepath.Join(dir, "sample_observations.ndjson")
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, s := range samples {
		if err := enc.Encode(s); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("wrote %d sample observations to %s\n", len(samples), path)
}
