package constants

// Топология RabbitMQ для событий заказов
const (
	OrdersExchange         = "imagery_orders_exchange"
	RoutingKeyOrderCreated = "order.created"
)
