package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// copyChunkSize é o tamanho do buffer usado ao gravar uploads em disco (1MB)
const copyChunkSize = 1024 * 1024

// DiskStorage encapsula o armazenamento dos arquivos no disco local.
// Cada objeto é gravado como {dir}/{ownerID}_{filename}: o prefixo com o ID
// do dono evita colisão de nomes entre usuários diferentes.
type DiskStorage struct {
	dir string
}

// NewDiskStorage cria o serviço de armazenamento, garantindo que o
// diretório de upload exista
func NewDiskStorage(dir string) (*DiskStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("diretório de upload não pode ser vazio")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("falha ao criar diretório de upload: %w", err)
	}
	return &DiskStorage{dir: dir}, nil
}

// ObjectPath monta o caminho determinístico de um objeto no disco.
// filepath.Base descarta qualquer componente de diretório vindo do cliente.
func (d *DiskStorage) ObjectPath(ownerID int64, filename string) string {
	return filepath.Join(d.dir, fmt.Sprintf("%d_%s", ownerID, filepath.Base(filename)))
}

// Save grava o stream no caminho indicado em chunks de 1MB e retorna a
// quantidade de bytes gravados. Em caso de erro o arquivo parcial é removido,
// para que nenhum registro de metadados aponte para um objeto incompleto.
func (d *DiskStorage) Save(path string, r io.Reader) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("falha ao criar arquivo em disco: %w", err)
	}

	buf := make([]byte, copyChunkSize)
	written, err := io.CopyBuffer(out, r, buf)
	if err != nil {
		out.Close()
		os.Remove(path)
		return 0, fmt.Errorf("falha ao gravar arquivo em disco: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("falha ao finalizar gravação: %w", err)
	}

	return written, nil
}

// Open abre um objeto para leitura. Retorna os.ErrNotExist (embrulhado)
// se o objeto não estiver mais no disco.
func (d *DiskStorage) Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir arquivo em disco: %w", err)
	}
	return f, nil
}

// Remove apaga um objeto do disco, tolerando objeto já ausente
func (d *DiskStorage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("falha ao remover arquivo do disco: %w", err)
	}
	return nil
}
