package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/application/reports"
	"github.com/clinivac/npwt-inventario/pkg/config"
	"github.com/clinivac/npwt-inventario/pkg/logger"
)

var _ reports.Cache = (*ReportCache)(nil)

const inventoryReportKey = "reports:inventory"

// ReportCache cachea el reporte de inventario valorizado en Redis con TTL
// corto. Un client nil deshabilita el cache sin tocar a los llamadores.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewReportCache construye el cache. client puede ser nil (cache deshabilitado).
func NewReportCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *ReportCache {
	return &ReportCache{client: client, ttl: ttl, log: log}
}

// NewRedisClient crea el client de Redis a partir de la configuración y
// verifica la conexión. Addr vacío devuelve nil (cache deshabilitado).
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis no disponible, cache de reportes deshabilitado")
		_ = client.Close()
		return nil
	}
	return client
}

// GetInventoryReport devuelve el reporte cacheado o false en miss/fallo.
func (c *ReportCache) GetInventoryReport(ctx context.Context) (*dto.InventoryReport, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, inventoryReportKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("error leyendo cache de reporte de inventario")
		}
		return nil, false
	}
	var report dto.InventoryReport
	if err := json.Unmarshal(raw, &report); err != nil {
		c.log.Warn().Err(err).Msg("reporte cacheado inválido, se descarta")
		_ = c.client.Del(ctx, inventoryReportKey).Err()
		return nil, false
	}
	return &report, true
}

// SetInventoryReport guarda el reporte con TTL. Los fallos solo se loguean.
func (c *ReportCache) SetInventoryReport(ctx context.Context, report *dto.InventoryReport) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		c.log.Warn().Err(err).Msg("no se pudo serializar el reporte de inventario")
		return
	}
	if err := c.client.Set(ctx, inventoryReportKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo cachear el reporte de inventario")
	}
}
