package storage

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminEmail 为默认管理员账号的邮箱，登录演示与种子逻辑共用。
const AdminEmail = "admin@d10solutions.com"

// Seed 在启动时写入默认数据，幂等可重复执行。三个块相互独立，
// 顺序固定为：管理员 → 示例用户 → 示例服务。
func Seed(ctx context.Context, db *gorm.DB) error {
	if err := seedAdmin(ctx, db); err != nil {
		return err
	}
	if err := seedUsers(ctx, db); err != nil {
		return err
	}
	return seedServices(ctx, db)
}

// seedAdmin 确保默认管理员存在（按邮箱判定）。
func seedAdmin(ctx context.Context, db *gorm.DB) error {
	var u User
	err := db.WithContext(ctx).Where("email = ?", AdminEmail).First(&u).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	admin := User{Username: "admin", Email: AdminEmail}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	log.WithField("email", AdminEmail).Info("admin user created")
	return nil
}

// seedUsers 在用户总数不超过 1（仅管理员）时补充五个示例用户。
// 每个用户单独按邮箱判重，避免与既有数据冲突。
func seedUsers(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 1 {
		return nil
	}
	samples := []User{
		{Username: "ana.gomez", Email: "ana.gomez@example.com"},
		{Username: "carlos.ruiz", Email: "carlos.ruiz@example.com"},
		{Username: "beatriz.solano", Email: "beatriz.solano@example.com"},
		{Username: "david.fernandez", Email: "david.fernandez@example.com"},
		{Username: "elena.martin", Email: "elena.martin@example.com"},
	}
	created := 0
	for _, s := range samples {
		var existing User
		err := db.WithContext(ctx).Where("email = ?", s.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		u := s
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			return err
		}
		created++
	}
	if created > 0 {
		log.WithField("count", created).Info("sample users created")
	}
	return nil
}

// seedServices 在服务表为空时插入十个固定的示例服务。
func seedServices(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	badge := func(s string) *string { return &s }
	samples := []Service{
		{Name: "Gestión Comercial", Description: "Potencializa tu gestión comercial y obtén información para optimizar el seguimiento de prospectos.", Price: 299.0, Category: "gestión", IconURL: "images/icon-gestion-comercial.png", Badge: badge("Popular")},
		{Name: "Gestión Académica", Description: "Administra información académica desde matrículas hasta evaluaciones y programación de horarios.", Price: 399.0, Category: "gestión académico", IconURL: "images/icon-gestion-academica.png", Badge: badge("Premium")},
		{Name: "Educación Virtual", Description: "Facilita comunicación con contenidos dinámicos, publicación de anuncios y cuestionarios interactivos.", Price: 259.0, Category: "virtual", IconURL: "images/icon-educacion-virtual.png"},
		{Name: "Bienestar Institucional", Description: "Promueve satisfacción estudiantil con encuestas, evaluaciones y acceso a bolsa de empleo.", Price: 199.0, Category: "gestión", IconURL: "images/icon-bienestar.png"},
		{Name: "Gestión Financiera", Description: "Controla cuentas por cobrar e ingresos con órdenes de pago, recibos y facturación automatizada.", Price: 359.0, Category: "gestión", IconURL: "images/icon-finanzas.png", Badge: badge("Premium")},
		{Name: "Comunidad en Línea", Description: "Aumenta comunicación con chat institucional, SMS, app móvil y campañas de mailing dirigidas.", Price: 179.0, Category: "comunicación", IconURL: "images/icon-comunidad.png"},
		{Name: "Sistema de Reportes", Description: "Genera reportes avanzados y dashboards interactivos con métricas clave de tu institución.", Price: 229.0, Category: "gestión", IconURL: "images/icon-reportes.png", Badge: badge("Nuevo")},
		{Name: "Gestión de Recursos", Description: "Administra aulas, laboratorios, equipos y recursos físicos de manera eficiente y centralizada.", Price: 189.0, Category: "gestión", IconURL: "images/icon-recursos.png"},
		{Name: "Portal de Padres", Description: "Conecta padres con el proceso educativo mediante notificaciones, calificaciones y comunicación directa.", Price: 149.0, Category: "comunicación", IconURL: "images/icon-portal-padres.png"},
		{Name: "Análisis y Métricas", Description: "Inteligencia artificial para análisis predictivo, métricas de rendimiento y toma de decisiones estratégicas.", Price: 449.0, Category: "gestión", IconURL: "images/icon-analytics.png", Badge: badge("Premium")},
	}
	if err := db.WithContext(ctx).Create(&samples).Error; err != nil {
		return err
	}
	log.WithField("count", len(samples)).Info("sample services created")
	return nil
}
