package venda

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Criar grava a venda e depois cada item apontando para ela.
	Criar(db *gorm.DB, v *Venda) error
	BuscarPorID(db *gorm.DB, id uint) (*Venda, error)
	ListarPorCliente(db *gorm.DB, cpf string) ([]Venda, error)
	ContarPorCliente(db *gorm.DB, cpf string) (int64, error)
	ContarPorReceita(db *gorm.DB, receitaID uint) (int64, error)
	ContarItensPorProduto(db *gorm.DB, produtoID uint) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, v *Venda) error {
	itens := v.Itens
	if err := db.Omit(clause.Associations).Create(v).Error; err != nil {
		return err
	}
	for i := range itens {
		itens[i].VendaID = v.ID
		if err := db.Omit(clause.Associations).Create(&itens[i]).Error; err != nil {
			return err
		}
	}
	v.Itens = itens
	return nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Venda, error) {
	var v Venda
	if err := db.Preload("Itens", ordenarItens).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repositoryImpl) ListarPorCliente(db *gorm.DB, cpf string) ([]Venda, error) {
	var vendas []Venda
	err := db.Preload("Itens", ordenarItens).
		Where("cpf_cliente = ?", cpf).
		Order("id_venda").
		Find(&vendas).Error
	return vendas, err
}

func ordenarItens(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func (r *repositoryImpl) ContarPorCliente(db *gorm.DB, cpf string) (int64, error) {
	var n int64
	err := db.Model(&Venda{}).Where("cpf_cliente = ?", cpf).Count(&n).Error
	return n, err
}

func (r *repositoryImpl) ContarPorReceita(db *gorm.DB, receitaID uint) (int64, error) {
	var n int64
	err := db.Model(&Venda{}).Where("receita_id = ?", receitaID).Count(&n).Error
	return n, err
}

func (r *repositoryImpl) ContarItensPorProduto(db *gorm.DB, produtoID uint) (int64, error) {
	var n int64
	err := db.Model(&ItemVenda{}).Where("id_produto = ?", produtoID).Count(&n).Error
	return n, err
}
