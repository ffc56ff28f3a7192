package produto

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Produto struct {
	ID             uint            `gorm:"column:id_produto;primaryKey" json:"id"`
	Nome           string          `gorm:"size:100;not null" json:"nome"`
	Preco          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"preco"`
	QtdEstoque     int             `gorm:"not null;default:0" json:"qtdEstoque"`
	PrecisaReceita bool            `gorm:"not null;default:false" json:"precisaReceita"`
}

func (Produto) TableName() string { return "produto" }

// Migrate cria a tabela de produtos
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Produto{})
}
