package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// writeSelfSignedCert creates a one-year self-signed certificate and key for
// local TLS.
func writeSelfSignedCert(certFile, keyFile string) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generate private key: %w", err)
	}

	dnsNames := []string{"localhost"}
	if hostname, _ := os.Hostname(); hostname != "" && hostname != "localhost" {
		dnsNames = append(dnsNames, hostname)
	}
	template := x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject: pkix.Name{
			Organization: []string{"Virtual Store"},
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              dnsNames,
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("::1")},
	}

	derCert, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return fmt.Errorf("create certificate: %w", err)
	}
	if err := writePEM(certFile, 0o644, "CERTIFICATE", derCert); err != nil {
		return err
	}
	return writePEM(keyFile, 0o600, "RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(privateKey))
}

func writePEM(path string, perm os.FileMode, blockType string, der []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := pem.Encode(f, &pem.Block{Type: blockType, Bytes: der}); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// listen serves plain HTTP (with h2c) or TLS depending on config. It returns
// nil once the server has been shut down.
func (s *server) listen(srv *http.Server) error {
	var err error
	if s.config.EnableTLS {
		if _, statErr := os.Stat(s.config.CertFile); errors.Is(statErr, os.ErrNotExist) {
			s.log.Info("certificate not found, generating self-signed pair",
				zap.String("cert_file", s.config.CertFile))
			if err := writeSelfSignedCert(s.config.CertFile, s.config.KeyFile); err != nil {
				return err
			}
		}
		s.log.Info("starting HTTPS server", zap.String("addr", srv.Addr))
		err = srv.ListenAndServeTLS(s.config.CertFile, s.config.KeyFile)
	} else {
		s.log.Info("starting HTTP server (h2c enabled)", zap.String("addr", srv.Addr))
		err = srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
