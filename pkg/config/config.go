package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Catalog CatalogConfig
	Store   StoreConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig directorio del almacén clave-valor del dispositivo
// (usuarioActual, carrito_<usuario>, stockProductos) y de los recibos.
type StorageConfig struct {
	Dir string
}

// CatalogConfig fuente del catálogo estático. Si URL no está vacío se usa HTTP;
// si no, se lee el archivo en Path.
type CatalogConfig struct {
	Path string
	URL  string
}

// StoreConfig parámetros comerciales de la tienda, en pesos enteros.
// Los valores por defecto son los de PicoSur.
type StoreConfig struct {
	PurchaseCeiling  int64 // tope de compra por carrito
	FreeShippingFrom int64 // subtotal desde el cual el envío es gratis
	ShippingCost     int64 // costo de envío plano
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo .env o config.env). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "picosur-tienda"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Dir: getString(v, "STORAGE_DIR", "./data/storage"),
		},
		Catalog: CatalogConfig{
			Path: getString(v, "CATALOG_PATH", "./data/cervezas.json"),
			URL:  getString(v, "CATALOG_URL", ""),
		},
		Store: StoreConfig{
			PurchaseCeiling:  int64(getInt(v, "TIENDA_LIMITE_COMPRA", 300_000)),
			FreeShippingFrom: int64(getInt(v, "TIENDA_ENVIO_GRATIS_DESDE", 50_000)),
			ShippingCost:     int64(getInt(v, "TIENDA_COSTO_ENVIO", 5_000)),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
