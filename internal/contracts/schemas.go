package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"log"

	"imagery-service/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

var orderCreateSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	data, err := schemasFS.ReadFile("schemas/order_create.json")
	if err != nil {
		log.Fatalf("failed to read embedded schema: %v", err)
	}
	if err := compiler.AddResource("order_create.json", bytes.NewReader(data)); err != nil {
		log.Fatalf("failed to add schema resource: %v", err)
	}

	orderCreateSchema, err = compiler.Compile("order_create.json")
	if err != nil {
		log.Fatalf("failed to compile order_create schema: %v", err)
	}
}

// ValidateOrderCreate проверяет тело POST /orders по схеме.
// Ошибка схемы - это всегда ошибка клиента (domain.ErrInvalidInput).
func ValidateOrderCreate(raw []byte) error {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("%w: body is not valid JSON", domain.ErrInvalidInput)
	}

	if err := orderCreateSchema.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
