package receita

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, r *Receita) error
	BuscarPorID(db *gorm.DB, id uint) (*Receita, error)
	ListarPagina(db *gorm.DB, offset, limite int) ([]Receita, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, rec *Receita) error {
	return db.Create(rec).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Receita, error) {
	var rec Receita
	if err := db.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repositoryImpl) ListarPagina(db *gorm.DB, offset, limite int) ([]Receita, error) {
	var receitas []Receita
	err := db.Order("id_receita").Offset(offset).Limit(limite).Find(&receitas).Error
	return receitas, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Receita{}, id).Error
}
