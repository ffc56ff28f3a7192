package testhelpers

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KromaEnergia/farmacia/internal/cliente"
	"github.com/KromaEnergia/farmacia/internal/produto"
	"github.com/KromaEnergia/farmacia/internal/utils/db"
)

// SetupTestDB abre um sqlite em memória com todas as tabelas criadas.
// Cada chamada devolve um banco novo e vazio.
func SetupTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	database, err := db.Connect(db.Config{
		Driver:   db.DriverSQLite,
		Path:     ":memory:",
		LogLevel: "silent",
	})
	if err != nil {
		tb.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		tb.Fatalf("Failed to migrate: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return database
}

// CriarProduto grava um produto direto no banco, sem passar pelo catálogo.
func CriarProduto(tb testing.TB, database *gorm.DB, nome, preco string, estoque int, precisaReceita bool) *produto.Produto {
	tb.Helper()

	p := &produto.Produto{
		Nome:           nome,
		Preco:          decimal.RequireFromString(preco),
		QtdEstoque:     estoque,
		PrecisaReceita: precisaReceita,
	}
	if err := database.Create(p).Error; err != nil {
		tb.Fatalf("Failed to create produto: %v", err)
	}
	return p
}

// CriarCliente grava um cliente com endereço.
func CriarCliente(tb testing.TB, database *gorm.DB, cpf, nome string) *cliente.Cliente {
	tb.Helper()

	c := &cliente.Cliente{
		CPF:      cpf,
		Nome:     nome,
		Telefone: "(11) 99999-0000",
		Endereco: &cliente.Endereco{Logradouro: "Rua das Flores, 10", Bairro: "Centro", CEP: "01000-000"},
	}
	if err := cliente.NewRepository().Criar(database, c); err != nil {
		tb.Fatalf("Failed to create cliente: %v", err)
	}
	return c
}

// Estoque relê a quantidade em estoque do produto.
func Estoque(tb testing.TB, database *gorm.DB, id uint) int {
	tb.Helper()

	var p produto.Produto
	if err := database.First(&p, id).Error; err != nil {
		tb.Fatalf("Failed to load produto %d: %v", id, err)
	}
	return p.QtdEstoque
}

// Contar devolve quantas linhas existem na tabela do modelo.
func Contar(tb testing.TB, database *gorm.DB, model any) int64 {
	tb.Helper()

	var n int64
	if err := database.Model(model).Count(&n).Error; err != nil {
		tb.Fatalf("Failed to count: %v", err)
	}
	return n
}
