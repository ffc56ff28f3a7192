package cliente

import "gorm.io/gorm"

// Endereco pertence a um único cliente e é criado e removido junto com ele.
type Endereco struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Logradouro string `gorm:"size:100" json:"logradouro"`
	Bairro     string `gorm:"size:100" json:"bairro"`
	CEP        string `gorm:"column:cep;size:15" json:"cep"`
}

func (Endereco) TableName() string { return "endereco" }

// Cliente é identificado pelo CPF (chave natural, imutável).
type Cliente struct {
	CPF        string    `gorm:"column:cpf;primaryKey;size:14" json:"cpf"`
	Nome       string    `gorm:"size:100;not null" json:"nome"`
	Telefone   string    `gorm:"size:20" json:"telefone"`
	EnderecoID *uint     `gorm:"index" json:"enderecoId,omitempty"`
	Endereco   *Endereco `gorm:"foreignKey:EnderecoID" json:"endereco,omitempty"`
	// ordem de inserção
	CriadoEm int64 `gorm:"autoCreateTime:nano;index" json:"-"`
}

func (Cliente) TableName() string { return "cliente" }

// Migrate cria as tabelas de endereço e cliente
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Endereco{}, &Cliente{})
}
