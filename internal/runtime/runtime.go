// Package runtime holds the fixed C runtime the emitted program links
// against — the reference-counted string/array/hash primitives, boxed
// ZnValue, and default hash/equals helpers spec.md §1 calls "the fixed
// C runtime header distributed alongside emitted code ... out of
// scope" and §6 specifies only as an external contract. The header and
// its implementation are embedded as Go string constants, the same
// technique esbuild's internal/runtime uses to embed its JS helper
// snippet as a Go string rather than a loose file shipped next to the
// binary, so the zinc CLI binary stays self-contained.
package runtime

// Header returns the fixed "zinc_runtime.h" text the emitter's
// `#include` directive (internal/zemit.EmitProgram) references and
// every emitted header transitively pulls in.
func Header() string { return header }

// Source returns the matching "zinc_runtime.c" implementation: plain
// malloc/free-based reference counting, no atomics, matching spec.md
// §5's single-threaded ARC model.
func Source() string { return source }

const header = `#ifndef ZINC_RUNTIME_H
#define ZINC_RUNTIME_H

#include <stdint.h>
#include <stdbool.h>
#include <stddef.h>

typedef struct ZnString {
    int32_t _rc;
    int32_t _len;
    char _data[];
} ZnString;

ZnString *__zn_str_retain(ZnString *s);
void __zn_str_release(ZnString *s);
ZnString *__zn_str_concat(ZnString *a, ZnString *b);
ZnString *__zn_str_from_int(int64_t v);
ZnString *__zn_str_from_float(double v);
ZnString *__zn_str_from_bool(bool v);
ZnString *__zn_str_from_char(char v);
uint64_t __zn_str_hash(ZnString *s);

typedef enum ZnTag {
    ZN_TAG_INT, ZN_TAG_FLOAT, ZN_TAG_BOOL, ZN_TAG_CHAR,
    ZN_TAG_STRING, ZN_TAG_ARRAY, ZN_TAG_HASH, ZN_TAG_REF, ZN_TAG_NULL
} ZnTag;

typedef struct ZnValue {
    ZnTag tag;
    union {
        int64_t i;
        double f;
        bool b;
        char c;
        void *ptr;
    } as;
} ZnValue;

ZnValue __zn_val_int(int64_t v);
ZnValue __zn_val_float(double v);
ZnValue __zn_val_bool(bool v);
ZnValue __zn_val_char(char v);
ZnValue __zn_val_string(ZnString *v);
ZnValue __zn_val_array(void *v);
ZnValue __zn_val_hash(void *v);
ZnValue __zn_val_ref(void *v);
ZnValue __zn_val_val(void *v, size_t size);

int64_t __zn_val_as_int(ZnValue v);
double __zn_val_as_float(ZnValue v);
bool __zn_val_as_bool(ZnValue v);
char __zn_val_as_char(ZnValue v);
void *__zn_val_as_val(ZnValue v);

// retain_fn/release_fn/hash_fn/equals_fn are the per-element callback
// shapes spec.md §4.5 says are "passed to the runtime when arrays/
// hashes are allocated".
typedef void *(*zn_retain_fn)(void *);
typedef void (*zn_release_fn)(void *);
typedef uint64_t (*zn_hash_fn)(void *);
typedef bool (*zn_equals_fn)(void *, void *);

typedef struct ZnArray {
    int32_t _rc;
    size_t len;
    size_t cap;
    ZnValue *items;
    zn_hash_fn hash_fn;
    zn_equals_fn equals_fn;
    zn_retain_fn retain_fn;
    zn_release_fn release_fn;
} ZnArray;

ZnArray *__zn_arr_alloc(size_t cap, zn_hash_fn hash_fn, zn_equals_fn equals_fn,
                         zn_retain_fn retain_fn, zn_release_fn release_fn);
ZnArray *__zn_arr_retain(ZnArray *a);
void __zn_arr_release(ZnArray *a);
void __zn_arr_push(ZnArray *a, ZnValue v);
void __zn_arr_set(ZnArray *a, size_t idx, ZnValue v);
ZnValue __zn_arr_get(ZnArray *a, size_t idx);
int64_t __zn_arr_len(ZnArray *a);

typedef struct ZnHashEntry {
    ZnValue key;
    ZnValue value;
    bool occupied;
} ZnHashEntry;

typedef struct ZnHash {
    int32_t _rc;
    size_t len;
    size_t cap;
    ZnHashEntry *entries;
    zn_hash_fn key_hash_fn;
    zn_equals_fn key_equals_fn;
    zn_retain_fn value_retain_fn;
    zn_release_fn value_release_fn;
} ZnHash;

ZnHash *__zn_hash_alloc(size_t cap);
ZnHash *__zn_hash_retain(ZnHash *h);
void __zn_hash_release(ZnHash *h);
void __zn_hash_set(ZnHash *h, ZnValue key, ZnValue value);
ZnValue __zn_hash_get(ZnHash *h, ZnValue key);
int64_t __zn_hash_len(ZnHash *h);

typedef struct ZnOpt_int   { bool _has; int64_t _val; } ZnOpt_int;
typedef struct ZnOpt_float { bool _has; double  _val; } ZnOpt_float;
typedef struct ZnOpt_bool  { bool _has; bool    _val; } ZnOpt_bool;
typedef struct ZnOpt_char  { bool _has; char    _val; } ZnOpt_char;

uint64_t __zn_default_hashcode(void *p, size_t size);
bool __zn_default_equals(void *a, void *b, size_t size);
uint64_t __zn_djb2_mix(uint64_t h, uint64_t v);

void __zn_print(ZnString *s);

#endif // ZINC_RUNTIME_H
`

const source = `#include "zinc_runtime.h"
#include <stdlib.h>
#include <string.h>
#include <stdio.h>

ZnString *__zn_str_retain(ZnString *s) {
    if (s && s->_rc >= 0) s->_rc++;
    return s;
}

void __zn_str_release(ZnString *s) {
    if (!s || s->_rc < 0) return;
    if (--s->_rc == 0) free(s);
}

static ZnString *zn_str_alloc(int32_t len) {
    ZnString *s = (ZnString *)malloc(sizeof(ZnString) + len + 1);
    s->_rc = 1;
    s->_len = len;
    s->_data[len] = '\0';
    return s;
}

ZnString *__zn_str_concat(ZnString *a, ZnString *b) {
    int32_t len = a->_len + b->_len;
    ZnString *out = zn_str_alloc(len);
    memcpy(out->_data, a->_data, a->_len);
    memcpy(out->_data + a->_len, b->_data, b->_len);
    return out;
}

ZnString *__zn_str_from_int(int64_t v) {
    char buf[32];
    int n = snprintf(buf, sizeof(buf), "%lld", (long long)v);
    ZnString *out = zn_str_alloc(n);
    memcpy(out->_data, buf, n);
    return out;
}

ZnString *__zn_str_from_float(double v) {
    char buf[64];
    int n = snprintf(buf, sizeof(buf), "%g", v);
    ZnString *out = zn_str_alloc(n);
    memcpy(out->_data, buf, n);
    return out;
}

ZnString *__zn_str_from_bool(bool v) {
    const char *text = v ? "true" : "false";
    int n = (int)strlen(text);
    ZnString *out = zn_str_alloc(n);
    memcpy(out->_data, text, n);
    return out;
}

ZnString *__zn_str_from_char(char v) {
    ZnString *out = zn_str_alloc(1);
    out->_data[0] = v;
    return out;
}

uint64_t __zn_djb2_mix(uint64_t h, uint64_t v) {
    return ((h << 5) + h) + v;
}

uint64_t __zn_str_hash(ZnString *s) {
    uint64_t h = 5381;
    for (int32_t i = 0; i < s->_len; i++) {
        h = __zn_djb2_mix(h, (unsigned char)s->_data[i]);
    }
    return h;
}

uint64_t __zn_default_hashcode(void *p, size_t size) {
    uint64_t h = 5381;
    unsigned char *bytes = (unsigned char *)p;
    for (size_t i = 0; i < size; i++) {
        h = __zn_djb2_mix(h, bytes[i]);
    }
    return h;
}

bool __zn_default_equals(void *a, void *b, size_t size) {
    return memcmp(a, b, size) == 0;
}

ZnValue __zn_val_int(int64_t v)    { ZnValue r; r.tag = ZN_TAG_INT; r.as.i = v; return r; }
ZnValue __zn_val_float(double v)   { ZnValue r; r.tag = ZN_TAG_FLOAT; r.as.f = v; return r; }
ZnValue __zn_val_bool(bool v)      { ZnValue r; r.tag = ZN_TAG_BOOL; r.as.b = v; return r; }
ZnValue __zn_val_char(char v)      { ZnValue r; r.tag = ZN_TAG_CHAR; r.as.c = v; return r; }
ZnValue __zn_val_string(ZnString *v) { ZnValue r; r.tag = ZN_TAG_STRING; r.as.ptr = v; return r; }
ZnValue __zn_val_array(void *v)    { ZnValue r; r.tag = ZN_TAG_ARRAY; r.as.ptr = v; return r; }
ZnValue __zn_val_hash(void *v)     { ZnValue r; r.tag = ZN_TAG_HASH; r.as.ptr = v; return r; }
ZnValue __zn_val_ref(void *v)      { ZnValue r; r.tag = ZN_TAG_REF; r.as.ptr = v; return r; }

ZnValue __zn_val_val(void *v, size_t size) {
    ZnValue r;
    r.tag = ZN_TAG_REF;
    r.as.ptr = malloc(size);
    memcpy(r.as.ptr, v, size);
    return r;
}

int64_t __zn_val_as_int(ZnValue v)  { return v.as.i; }
double  __zn_val_as_float(ZnValue v){ return v.as.f; }
bool    __zn_val_as_bool(ZnValue v) { return v.as.b; }
char    __zn_val_as_char(ZnValue v) { return v.as.c; }
void   *__zn_val_as_val(ZnValue v)  { return v.as.ptr; }

ZnArray *__zn_arr_alloc(size_t cap, zn_hash_fn hash_fn, zn_equals_fn equals_fn,
                         zn_retain_fn retain_fn, zn_release_fn release_fn) {
    ZnArray *a = (ZnArray *)malloc(sizeof(ZnArray));
    a->_rc = 1;
    a->len = 0;
    a->cap = cap > 0 ? cap : 4;
    a->items = (ZnValue *)calloc(a->cap, sizeof(ZnValue));
    a->hash_fn = hash_fn;
    a->equals_fn = equals_fn;
    a->retain_fn = retain_fn;
    a->release_fn = release_fn;
    return a;
}

ZnArray *__zn_arr_retain(ZnArray *a) { if (a) a->_rc++; return a; }

void __zn_arr_release(ZnArray *a) {
    if (!a) return;
    if (--a->_rc == 0) {
        if (a->release_fn) {
            for (size_t i = 0; i < a->len; i++) a->release_fn(a->items[i].as.ptr);
        }
        free(a->items);
        free(a);
    }
}

static void zn_arr_grow(ZnArray *a) {
    if (a->len < a->cap) return;
    a->cap *= 2;
    a->items = (ZnValue *)realloc(a->items, a->cap * sizeof(ZnValue));
}

void __zn_arr_push(ZnArray *a, ZnValue v) {
    zn_arr_grow(a);
    if (a->retain_fn && v.as.ptr) a->retain_fn(v.as.ptr);
    a->items[a->len++] = v;
}

void __zn_arr_set(ZnArray *a, size_t idx, ZnValue v) {
    if (a->release_fn && a->items[idx].as.ptr) a->release_fn(a->items[idx].as.ptr);
    if (a->retain_fn && v.as.ptr) a->retain_fn(v.as.ptr);
    a->items[idx] = v;
}

ZnValue __zn_arr_get(ZnArray *a, size_t idx) { return a->items[idx]; }

int64_t __zn_arr_len(ZnArray *a) { return (int64_t)a->len; }

ZnHash *__zn_hash_alloc(size_t cap) {
    ZnHash *h = (ZnHash *)malloc(sizeof(ZnHash));
    h->_rc = 1;
    h->len = 0;
    h->cap = cap > 0 ? cap : 8;
    h->entries = (ZnHashEntry *)calloc(h->cap, sizeof(ZnHashEntry));
    h->key_hash_fn = NULL;
    h->key_equals_fn = NULL;
    h->value_retain_fn = NULL;
    h->value_release_fn = NULL;
    return h;
}

ZnHash *__zn_hash_retain(ZnHash *h) { if (h) h->_rc++; return h; }

void __zn_hash_release(ZnHash *h) {
    if (!h) return;
    if (--h->_rc == 0) {
        if (h->value_release_fn) {
            for (size_t i = 0; i < h->cap; i++) {
                if (h->entries[i].occupied) h->value_release_fn(h->entries[i].value.as.ptr);
            }
        }
        free(h->entries);
        free(h);
    }
}

static size_t zn_hash_slot(ZnHash *h, ZnValue key) {
    uint64_t hv = h->key_hash_fn ? h->key_hash_fn(key.as.ptr) : (uint64_t)key.as.i;
    size_t slot = (size_t)(hv % h->cap);
    while (h->entries[slot].occupied) {
        bool eq = h->key_equals_fn
            ? h->key_equals_fn(h->entries[slot].key.as.ptr, key.as.ptr)
            : h->entries[slot].key.as.i == key.as.i;
        if (eq) break;
        slot = (slot + 1) % h->cap;
    }
    return slot;
}

void __zn_hash_set(ZnHash *h, ZnValue key, ZnValue value) {
    size_t slot = zn_hash_slot(h, key);
    if (h->entries[slot].occupied && h->value_release_fn) {
        h->value_release_fn(h->entries[slot].value.as.ptr);
    }
    if (h->value_retain_fn && value.as.ptr) h->value_retain_fn(value.as.ptr);
    h->entries[slot].key = key;
    h->entries[slot].value = value;
    if (!h->entries[slot].occupied) {
        h->entries[slot].occupied = true;
        h->len++;
    }
}

ZnValue __zn_hash_get(ZnHash *h, ZnValue key) {
    size_t slot = zn_hash_slot(h, key);
    return h->entries[slot].value;
}

int64_t __zn_hash_len(ZnHash *h) { return (int64_t)h->len; }

void __zn_print(ZnString *s) {
    fwrite(s->_data, 1, (size_t)s->_len, stdout);
    fputc('\n', stdout);
}
`
