package db

import (
	"github.com/KromaEnergia/farmacia/internal/cliente"
	"github.com/KromaEnergia/farmacia/internal/produto"
	"github.com/KromaEnergia/farmacia/internal/receita"
	"github.com/KromaEnergia/farmacia/internal/venda"
	"gorm.io/gorm"
)

// Migrate aplica o AutoMigrate de todos os modelos, na ordem das dependências.
func Migrate(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		cliente.Migrate,
		produto.Migrate,
		receita.Migrate,
		venda.Migrate,
	}
	for _, m := range migrations {
		if err := m(db); err != nil {
			return err
		}
	}
	return nil
}
