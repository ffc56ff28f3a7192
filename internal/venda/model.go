package venda

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KromaEnergia/farmacia/internal/cliente"
	"github.com/KromaEnergia/farmacia/internal/produto"
	"github.com/KromaEnergia/farmacia/internal/receita"
)

// Venda é criada junto com seus itens, numa única transação, e não muda depois.
// Cliente e receita referenciados não podem ser removidos enquanto a venda existir.
type Venda struct {
	ID         uint             `gorm:"column:id_venda;primaryKey" json:"id"`
	DataVenda  time.Time        `gorm:"not null" json:"dataVenda"`
	Valor      decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"valor"`
	CPFCliente string           `gorm:"column:cpf_cliente;size:14;not null;index" json:"cpfCliente"`
	Cliente    *cliente.Cliente `gorm:"foreignKey:CPFCliente;references:CPF;constraint:OnDelete:RESTRICT" json:"-"`
	ReceitaID  *uint            `gorm:"index" json:"receitaId,omitempty"`
	Receita    *receita.Receita `gorm:"foreignKey:ReceitaID;constraint:OnDelete:RESTRICT" json:"-"`
	Itens      []ItemVenda      `gorm:"foreignKey:VendaID" json:"itens"`
}

func (Venda) TableName() string { return "venda" }

// ItemVenda guarda o preço unitário vigente no momento em que o item foi aceito.
type ItemVenda struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	VendaID       uint             `gorm:"column:id_venda;not null;index" json:"vendaId"`
	ProdutoID     uint             `gorm:"column:id_produto;not null;index" json:"produtoId"`
	Produto       *produto.Produto `gorm:"foreignKey:ProdutoID;constraint:OnDelete:RESTRICT" json:"-"`
	Quantidade    int              `gorm:"not null;default:1" json:"quantidade"`
	PrecoUnitario decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"precoUnitario"`
}

func (ItemVenda) TableName() string { return "venda_produto" }

// Subtotal = quantidade × preço unitário
func (i ItemVenda) Subtotal() decimal.Decimal {
	return i.PrecoUnitario.Mul(decimal.NewFromInt(int64(i.Quantidade)))
}

// Migrate cria venda e venda_produto; cliente, produto e receita já devem existir.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Venda{}, &ItemVenda{})
}
