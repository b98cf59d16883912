package server_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-server/internal/server"
)

func createTestCertificate(t *testing.T) (certFile, keyFile string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"Test"},
		},
		NotBefore:   time.Now(),
		NotAfter:    time.Now().Add(time.Hour),
		KeyUsage:    x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses: []net.IP{net.ParseIP("127.0.0.1")},
	}

	derBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	dir := t.TempDir()
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")

	certOut, err := os.Create(certFile)
	require.NoError(t, err)
	require.NoError(t, pem.Encode(certOut, &pem.Block{Type: "CERTIFICATE", Bytes: derBytes}))
	require.NoError(t, certOut.Close())

	keyOut, err := os.Create(keyFile)
	require.NoError(t, err)
	require.NoError(t, pem.Encode(keyOut, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}))
	require.NoError(t, keyOut.Close())

	return certFile, keyFile
}

func TestTLSListener_Listen(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		certFile, keyFile := createTestCertificate(t)

		l := server.NewTLSListener(certFile, keyFile)
		listener, err := l.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer listener.Close()

		assert.NotEmpty(t, listener.Addr().String())
	})

	t.Run("missing certificate", func(t *testing.T) {
		l := server.NewTLSListener("no-such-cert.pem", "no-such-key.pem")
		listener, err := l.Listen("tcp", "127.0.0.1:0")
		require.Error(t, err)
		assert.Nil(t, listener)
	})

	t.Run("invalid address", func(t *testing.T) {
		certFile, keyFile := createTestCertificate(t)

		l := server.NewTLSListener(certFile, keyFile)
		listener, err := l.Listen("tcp", "invalid-address")
		require.Error(t, err)
		assert.Nil(t, listener)
	})
}

func TestPlainListener_Listen(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		l := server.NewPlainListener()
		listener, err := l.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer listener.Close()

		assert.NotEmpty(t, listener.Addr().String())
	})

	t.Run("invalid address", func(t *testing.T) {
		l := server.NewPlainListener()
		listener, err := l.Listen("tcp", "invalid-address")
		require.Error(t, err)
		assert.Nil(t, listener)
	})
}
