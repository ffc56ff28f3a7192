package produto

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, p *Produto) error
	BuscarPorID(db *gorm.DB, id uint) (*Produto, error)
	ListarPagina(db *gorm.DB, offset, limite int) ([]Produto, error)
	// BaixarEstoque subtrai qtd do estoque somente se houver saldo; devolve false caso contrário.
	BaixarEstoque(db *gorm.DB, id uint, qtd int) (bool, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, p *Produto) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Produto, error) {
	var p Produto
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) ListarPagina(db *gorm.DB, offset, limite int) ([]Produto, error) {
	var produtos []Produto
	err := db.Order("id_produto").Offset(offset).Limit(limite).Find(&produtos).Error
	return produtos, err
}

func (r *repositoryImpl) BaixarEstoque(db *gorm.DB, id uint, qtd int) (bool, error) {
	res := db.Model(&Produto{}).
		Where("id_produto = ? AND qtd_estoque >= ?", id, qtd).
		UpdateColumn("qtd_estoque", gorm.Expr("qtd_estoque - ?", qtd))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Produto{}, id).Error
}
