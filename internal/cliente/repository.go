package cliente

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, c *Cliente) error
	BuscarPorCPF(db *gorm.DB, cpf string) (*Cliente, error)
	Existe(db *gorm.DB, cpf string) (bool, error)
	ListarPagina(db *gorm.DB, offset, limite int) ([]Cliente, error)
	Deletar(db *gorm.DB, c *Cliente) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Criar grava o endereço (se houver) e depois o cliente apontando para ele.
// Deve ser chamado dentro de uma transação.
func (r *repositoryImpl) Criar(db *gorm.DB, c *Cliente) error {
	if c.Endereco != nil {
		if err := db.Create(c.Endereco).Error; err != nil {
			return err
		}
		c.EnderecoID = &c.Endereco.ID
	}
	return db.Omit("Endereco").Create(c).Error
}

func (r *repositoryImpl) BuscarPorCPF(db *gorm.DB, cpf string) (*Cliente, error) {
	var c Cliente
	err := db.Preload("Endereco").Where("cpf = ?", cpf).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Existe(db *gorm.DB, cpf string) (bool, error) {
	var c Cliente
	err := db.Select("cpf").Where("cpf = ?", cpf).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *repositoryImpl) ListarPagina(db *gorm.DB, offset, limite int) ([]Cliente, error) {
	var clientes []Cliente
	err := db.Preload("Endereco").
		Order("criado_em, cpf").
		Offset(offset).
		Limit(limite).
		Find(&clientes).Error
	return clientes, err
}

// Deletar remove o cliente e o endereço que ele possui.
func (r *repositoryImpl) Deletar(db *gorm.DB, c *Cliente) error {
	if err := db.Where("cpf = ?", c.CPF).Delete(&Cliente{}).Error; err != nil {
		return err
	}
	if c.EnderecoID != nil {
		return db.Delete(&Endereco{}, *c.EnderecoID).Error
	}
	return nil
}
