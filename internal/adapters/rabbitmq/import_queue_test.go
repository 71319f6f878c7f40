package rabbitmq

import (
	"testing"

	"github.com/inbackru/v35-sub000/internal/constants"
	"github.com/inbackru/v35-sub000/pkg/rabbitmq/rabbitmq_producer"
)

func TestNewImportQueueAdapterValidation(t *testing.T) {
	if _, err := NewImportQueueAdapter(nil, constants.RoutingKeyListingImport); err == nil {
		t.Error("nil producer must return an error")
	}
	if _, err := NewImportQueueAdapter(&rabbitmq_producer.Publisher{}, ""); err == nil {
		t.Error("empty routing key must return an error")
	}
}
