package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "STOREFRONT_APP_ENV"
	EnvPort         = "STOREFRONT_APP_PORT"
	EnvLogLevel     = "STOREFRONT_LOG_LEVEL"
	EnvStorageDrv   = "STOREFRONT_STORAGE_DRIVER"
	EnvSnapshotKey  = "STOREFRONT_STORAGE_SNAPSHOT_KEY"
	EnvDBDSN        = "STOREFRONT_DB_DSN"
	EnvRedisURL     = "STOREFRONT_REDIS_URL"
	EnvFetchLatency = "STOREFRONT_DIRECTORY_FETCH_LATENCY"
	EnvProcessing   = "STOREFRONT_ORDERS_PROCESSING_AFTER"
	EnvOutForDeliv  = "STOREFRONT_ORDERS_OUT_FOR_DELIVERY_AFTER"
	EnvDelivered    = "STOREFRONT_ORDERS_DELIVERED_AFTER"
	EnvDeliveryFee  = "STOREFRONT_BILLING_DELIVERY_FEE"
	EnvFreeDelivery = "STOREFRONT_BILLING_FREE_DELIVERY_THRESHOLD"
)
